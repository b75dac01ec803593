// Package prefs persists the few settings that survive a reboot: the UTC
// offset, the phone time captured during provisioning and whether the
// about page is still wanted.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/storage"
)

// FileName is the settings document inside the storage root
const FileName = "prefs.json"

type document struct {
	UTCOffset *int   `json:"utc_offset,omitempty"`
	PhoneTime string `json:"phone_time,omitempty"`
	ShowAbout *bool  `json:"show_about,omitempty"`
}

// Prefs is a small key/value view over a JSON document in storage.
// Every setter writes the whole document back.
type Prefs struct {
	mu     sync.Mutex
	client storage.StorageClient
	doc    document
	log    *logger.Logger
}

// Open loads the settings document. A missing document is an empty one. A
// corrupt document is logged and replaced on the next write. The returned
// Prefs is usable even when err is non-nil.
func Open(ctx context.Context, client storage.StorageClient) (*Prefs, error) {
	p := &Prefs{client: client, log: logger.Component("prefs")}

	data, err := client.GetFile(ctx, FileName)
	if errors.Is(err, storage.ErrNotExist) {
		p.log.Debug("No stored preferences", logger.Fields{"file": FileName})
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &p.doc); err != nil {
		p.log.Warn("Ignoring corrupt preferences", logger.Fields{"file": FileName, "error": err.Error()})
		p.doc = document{}
	}
	return p, nil
}

func (p *Prefs) save(ctx context.Context) error {
	data, err := json.MarshalIndent(p.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := p.client.StoreFile(ctx, FileName, data); err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}
	return nil
}

// UTCOffset returns the stored offset in hours and whether one is stored
func (p *Prefs) UTCOffset() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc.UTCOffset == nil {
		return 0, false
	}
	return *p.doc.UTCOffset, true
}

func (p *Prefs) SetUTCOffset(ctx context.Context, hours int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.UTCOffset = &hours
	p.log.Info("UTC offset stored", logger.Fields{"utc_offset": hours})
	return p.save(ctx)
}

// PhoneTime returns the "HH:MM" local time captured at provisioning, or ""
func (p *Prefs) PhoneTime() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.PhoneTime
}

// SetPhoneTime records the phone's local "HH:MM" as sent by the
// provisioning client (POST /phone-time). Any stored offset is dropped so
// the next start derives it from this time.
func (p *Prefs) SetPhoneTime(ctx context.Context, hhmm string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.PhoneTime = hhmm
	p.doc.UTCOffset = nil
	p.log.Info("Phone time stored", logger.Fields{"phone_time": hhmm})
	return p.save(ctx)
}

// ShowAbout reports whether the about page should be shown. Defaults to true.
func (p *Prefs) ShowAbout() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc.ShowAbout == nil {
		return true
	}
	return *p.doc.ShowAbout
}

func (p *Prefs) SetShowAbout(ctx context.Context, show bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.ShowAbout = &show
	p.log.Info("About page preference stored", logger.Fields{"show_about": show})
	return p.save(ctx)
}
