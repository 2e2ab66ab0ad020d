package eventsink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"matchcore/domain/event"
	"matchcore/orderseq"
)

// audit journal record layout: "seq|crc32|type|time|json\n".
// The journal is append-only and write-only by design: nothing in
// this module ever parses a segment back into events. The core has no
// recovery or replay semantics across process restarts, so a journal
// that could be replayed into engine state would misrepresent the
// contract; this one exists purely as an external audit trail.

// AuditSink appends every published event to a rotating segment file,
// CRC32-checksummed and sequence-numbered.
type AuditSink struct {
	dir         string
	segmentSize int64

	current      *auditSegment
	nextIndex    int
	lastRotation time.Time

	seq *orderseq.Sequencer
}

// AuditConfig configures an AuditSink.
type AuditConfig struct {
	Dir             string
	SegmentSize     int64 // bytes; rotates the active segment once exceeded
	SegmentDuration time.Duration
}

func NewAuditSink(cfg AuditConfig, seq *orderseq.Sequencer) (*AuditSink, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("eventsink: create audit dir %s: %w", cfg.Dir, err)
	}
	seg, err := openAuditSegment(cfg.Dir, 0)
	if err != nil {
		return nil, err
	}
	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = 64 << 20
	}
	return &AuditSink{
		dir:          cfg.Dir,
		segmentSize:  cfg.SegmentSize,
		current:      seg,
		lastRotation: time.Now(),
		seq:          seq,
	}, nil
}

func (a *AuditSink) Publish(e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	seqNum := a.seq.Next()
	crc := crc32Of(payload)
	line := fmt.Sprintf("%d|%d|%d|%d|%s\n", seqNum, crc, e.Kind(), time.Now().UnixNano(), payload)

	if err := a.current.append([]byte(line)); err != nil {
		return
	}
	if a.current.offset >= a.segmentSize {
		_ = a.rotate()
	}
}

func (a *AuditSink) rotate() error {
	_ = a.current.close()
	a.nextIndex++
	seg, err := openAuditSegment(a.dir, a.nextIndex)
	if err != nil {
		return err
	}
	a.current = seg
	a.lastRotation = time.Now()
	return nil
}

func (a *AuditSink) Close() error {
	return a.current.close()
}

type auditSegment struct {
	file   *os.File
	offset int64
}

func openAuditSegment(dir string, index int) (*auditSegment, error) {
	path := filepath.Join(dir, fmt.Sprintf("segment-%06d.audit", index))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &auditSegment{file: f, offset: info.Size()}, nil
}

func (s *auditSegment) append(b []byte) error {
	n, err := s.file.Write(b)
	if err != nil {
		return err
	}
	s.offset += int64(n)
	return nil
}

func (s *auditSegment) close() error {
	return s.file.Close()
}
