package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

type badEvent struct{}

func (badEvent) EventType() string { return "" }

func sampleInquiryEvent() InquirySubmittedV1 {
	return InquirySubmittedV1{
		InquiryID:   "inq-1",
		Type:        "trip_plan",
		FullName:    "Amelia Hart",
		Email:       "amelia@example.com",
		Phone:       "7700900123",
		GuestCount:  2,
		Resorts:     []string{"Soneva Fushi"},
		CheckIn:     "2026-03-10",
		CheckOut:    "2026-03-17",
		SubmittedAt: time.Unix(100, 0).UTC(),
	}
}

func TestNewEnvelope(t *testing.T) {
	fixedNow := time.Unix(0, 123456000).UTC()
	prevNow := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	defer func() { nowFunc = prevNow }()

	id := uuid.MustParse("9a20d7d1-bf6a-4d33-bd55-5d25a816f1a8")
	env, err := NewEnvelope("inquiry:inq-1", "corr-1", sampleInquiryEvent(), WithEventID(id))
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if env.EventID != id {
		t.Fatalf("expected event id override, got %s", env.EventID)
	}
	if env.TimestampMicros != fixedNow.UnixMicro() || !env.Timestamp().Equal(fixedNow) {
		t.Fatalf("unexpected timestamp: %d", env.TimestampMicros)
	}
	if env.EventType != TypeInquirySubmittedV1 {
		t.Fatalf("unexpected type: %s", env.EventType)
	}
	if env.Aggregate != "inquiry:inq-1" {
		t.Fatalf("unexpected aggregate: %s", env.Aggregate)
	}
	if len(env.Payload) == 0 {
		t.Fatal("expected payload bytes")
	}
}

func TestEnvelopeValidation(t *testing.T) {
	if _, err := NewEnvelope("", "", sampleInquiryEvent()); err == nil {
		t.Fatal("expected aggregate error")
	}
	if _, err := NewEnvelope("agg", "", nil); err == nil {
		t.Fatal("expected nil event error")
	}
	if _, err := NewEnvelope("agg", "", badEvent{}); err == nil {
		t.Fatal("expected event type error")
	}
}

func TestWithTimestampOption(t *testing.T) {
	target := time.Unix(50, 123000).UTC()
	env, err := NewEnvelope("agg", "", sampleInquiryEvent(), WithTimestamp(target))
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if env.TimestampMicros != target.UnixMicro() {
		t.Fatalf("expected timestamp override, got %d", env.TimestampMicros)
	}
}

func TestDecodeEnvelopeAndPayload(t *testing.T) {
	env, err := NewEnvelope("inquiry:inq-1", "", sampleInquiryEvent())
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	body, _ := json.Marshal(env)

	decoded, err := DecodeEnvelope(string(body))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	var evt InquirySubmittedV1
	if err := DecodePayload(decoded, &evt); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if evt.InquiryID != "inq-1" || evt.Resorts[0] != "Soneva Fushi" {
		t.Fatalf("unexpected payload %+v", evt)
	}

	if _, err := DecodeEnvelope(`{"event_type":"x"}`); err == nil {
		t.Fatal("expected error for envelope without id")
	}
	if _, err := DecodeEnvelope(`not json`); err == nil {
		t.Fatal("expected error for malformed body")
	}
	decoded.EventType = "something.else.v1"
	if err := DecodePayload(decoded, &evt); err == nil {
		t.Fatal("expected type mismatch error")
	}
}
