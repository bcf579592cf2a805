package mongo

import (
	"context"
	"testing"
)

func TestConnect_RequiresTimeout(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017", Database: "identity"})
	if err == nil {
		t.Fatalf("expected error when timeout is not configured")
	}
}
