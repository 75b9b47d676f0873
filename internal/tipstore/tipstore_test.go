// Copyright (c) 2025 The chainwatch developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tipstore

import (
	"testing"

	"github.com/chainwatch/spvsync/internal/chainhash"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if ok {
		t.Fatal("expected no tip in a freshly opened store")
	}

	want := Tip{Hash: chainhash.HashH([]byte("block 100")), Height: 100}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected a saved tip")
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestSaveOverwritesPreviousTip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	first := Tip{Hash: chainhash.HashH([]byte("a")), Height: 1}
	second := Tip{Hash: chainhash.HashH([]byte("b")), Height: 2}

	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got != second {
		t.Fatalf("got %+v want %+v", got, second)
	}
}
