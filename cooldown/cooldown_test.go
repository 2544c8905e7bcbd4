package cooldown

import (
	"testing"
	"time"
)

func TestLimiter_FirstCallAlwaysAllowed(t *testing.T) {
	l := New(time.Minute)
	if !l.Allow() {
		t.Error("expected the first Allow() call to succeed")
	}
}

func TestLimiter_SecondCallWithinWindowIsDenied(t *testing.T) {
	l := New(time.Minute)
	if !l.Allow() {
		t.Fatal("expected the first Allow() call to succeed")
	}
	if l.Allow() {
		t.Error("expected a second call within the cooldown window to be denied")
	}
}

func TestLimiter_AllowsAgainAfterWindowElapses(t *testing.T) {
	l := New(10 * time.Millisecond)
	if !l.Allow() {
		t.Fatal("expected the first Allow() call to succeed")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow() {
		t.Error("expected Allow() to succeed again once the window elapsed")
	}
}
