package container

import (
	"context"
	"testing"

	"github.com/oksasatya/noteful/config"
	"github.com/oksasatya/noteful/internal/infrastructure/memory"
	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/metrics"
)

func TestMemoryStoresAndReset(t *testing.T) {
	Reset()
	SetConfig(&config.Config{AppName: "noteful"})
	SetLogger(helpers.NopLogger())
	SetStores(MemoryStores(memory.NewStore()))

	s := GetStores()
	if s.Users == nil || s.Folders == nil || s.Tags == nil || s.Notes == nil || s.Tx == nil {
		t.Fatalf("memory stores not fully wired: %+v", s)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	Reset()
	if GetConfig() != nil || GetLogger() != nil || GetRedis() != nil || GetJWT() != nil || GetRabbitPub() != nil {
		t.Fatal("reset left a singleton behind")
	}
	if GetStores().Notes != nil {
		t.Fatal("reset left stores behind")
	}
	if _, ok := GetMetrics().(metrics.Nop); !ok {
		t.Fatalf("metrics after reset = %T, want metrics.Nop", GetMetrics())
	}
}
