package model

import (
	"bytes"
	"path/filepath"
	"testing"
)

type fittedThing struct {
	BaseEstimator
	Mean []float64
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig := fittedThing{Mean: []float64{1.5, 2.5}}
	orig.SetFitted()

	path := filepath.Join(t.TempDir(), "stats.gob")
	if err := SaveModel(&orig, path); err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}

	var got fittedThing
	if err := LoadModel(&got, path); err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if !got.IsFitted() {
		t.Error("fitted state should survive a save/load cycle")
	}
	if len(got.Mean) != 2 || got.Mean[1] != 2.5 {
		t.Errorf("Mean = %v", got.Mean)
	}
}

func TestLoadModelErrors(t *testing.T) {
	var got fittedThing
	if err := LoadModel(&got, filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := LoadModelFromReader(&got, bytes.NewBufferString("not gob")); err == nil {
		t.Error("expected decode error")
	}
}

func TestBaseEstimatorReset(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}
	e.SetFitted()
	e.Reset()
	if e.IsFitted() {
		t.Error("Reset should clear fitted state")
	}
}
