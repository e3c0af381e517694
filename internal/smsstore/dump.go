// Package smsstore reads MoMo SMS straight from phone exports: the XML
// files written by SMS backup apps and the Android telephony database.
// Both hold the inbox of a single device, so the owner argument of
// ListMessages is only used for logging.
package smsstore

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"slices"
	"time"

	"momopress/internal/logger"
	"momopress/internal/models"
)

// smsTypeInbox is the Android message box of received SMS.
const smsTypeInbox = 1

type dumpFile struct {
	XMLName  xml.Name     `xml:"smses"`
	Messages []dumpRecord `xml:"sms"`
}

type dumpRecord struct {
	Address string `xml:"address,attr"`
	Date    int64  `xml:"date,attr"`
	Type    int    `xml:"type,attr"`
	Body    string `xml:"body,attr"`
}

// DumpSource reads an SMS backup XML file. The file is read on every call
// so a fresh export is picked up without a restart.
type DumpSource struct {
	path string
}

func NewDumpSource(path string) *DumpSource {
	return &DumpSource{path: path}
}

// ListMessages returns the received messages from sender within [from, to],
// newest first. A zero from or to leaves that side open.
func (s *DumpSource) ListMessages(ctx context.Context, owner string, from, to time.Time, sender string) ([]models.RawMessage, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open sms dump: %w", err)
	}
	defer f.Close()

	var dump dumpFile
	if err := xml.NewDecoder(f).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode sms dump: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []models.RawMessage
	for _, r := range dump.Messages {
		// exports from older apps omit the type
		if r.Type != 0 && r.Type != smsTypeInbox {
			continue
		}
		if sender != "" && r.Address != sender {
			continue
		}
		at := time.UnixMilli(r.Date).UTC()
		if !inWindow(at, from, to) {
			continue
		}
		out = append(out, models.RawMessage{Sender: r.Address, Body: r.Body, Timestamp: at})
	}

	newestFirst(out)
	logger.For(logger.ComponentSMSStore).Debugw("Read sms dump",
		"path", s.path,
		"owner", owner,
		"total", len(dump.Messages),
		"matched", len(out),
	)
	return out, nil
}

func inWindow(at, from, to time.Time) bool {
	if !from.IsZero() && at.Before(from) {
		return false
	}
	if !to.IsZero() && at.After(to) {
		return false
	}
	return true
}

func newestFirst(msgs []models.RawMessage) {
	slices.SortStableFunc(msgs, func(a, b models.RawMessage) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}
