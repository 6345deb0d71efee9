package mirror

import "time"

func (m *Mirror) SetNow(now func() time.Time) {
	m.now = now
}

func (m *Mirror) Backoff(attempts int) time.Duration {
	return m.backoff(attempts)
}
