package awsutil

import (
	"testing"
	"time"
)

func TestJitteredExponentialBackoff(t *testing.T) {
	var i int
	start := time.Now()
	for jeb := JitteredExponentialBackoff(10*time.Millisecond, 20*time.Millisecond, 4); jeb(); { // for fast tests that still prove results
		t.Log(time.Now().Format(time.StampMilli))
		i++
	}
	if i != 4 {
		t.Fatalf("looped %d times but expected 4", i)
	}

	// Three sleeps of at least 75% of 10ms, 20ms, and 20ms.
	if elapsed := time.Since(start); elapsed < 37*time.Millisecond {
		t.Fatalf("only slept %v", elapsed)
	}
}

func TestJitteredExponentialBackoffBreak(t *testing.T) {
	var i int
	for jeb := JitteredExponentialBackoff(time.Millisecond, time.Millisecond, 0); jeb(); {
		if i >= 5 {
			break
		}
		i++
	}
	if i != 5 {
		t.Fatal(i)
	}
}
