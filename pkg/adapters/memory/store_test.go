package memory_test

import (
	"testing"

	"github.com/aretw0/quicktrace/pkg/adapters/memory"
	"github.com/aretw0/quicktrace/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTraceStoreContract(t, store)
}
