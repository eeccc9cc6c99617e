package recorder

import "time"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ *SignalEvent) error              { return nil }
func (n *NoopRecorder) RecordTrade(_ *TradeEvent) error                { return nil }
func (n *NoopRecorder) RecordSnapshot(_ *SnapshotEvent) error          { return nil }
func (n *NoopRecorder) CountSignalsSince(_ time.Time) (int, error)     { return 0, nil }
func (n *NoopRecorder) Close() error                                   { return nil }
