package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncIntervalDefault(t *testing.T) {
	// 非法/缺省间隔回落到5秒
	assert.Equal(t, 5*time.Second, (&SyncConfig{}).Interval())
	assert.Equal(t, 5*time.Second, (&SyncConfig{IntervalMs: -1}).Interval())
	assert.Equal(t, 1500*time.Millisecond, (&SyncConfig{IntervalMs: 1500}).Interval())
}
