package wizard

import (
	"context"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

func TestDraftStore_RoundTrip(t *testing.T) {
	plan := NewDraft()
	plan.CurrentStep = 3
	plan.HighestStep = 4
	plan.Intent = "Honeymoon"
	plan.SelectedTags = []string{"Spa", "Diving"}
	plan.PreferenceToggles["villa"] = "Water Villa"
	plan.DateRange.CheckIn = date("2026-03-10")
	plan.DateRange.CheckOut = date("2026-03-15")
	plan.Contact.FullName = "Amelia Hart"

	quote := NewDraft()
	quote.CurrentStep = 3
	quote.HighestStep = 3
	quote.Intent = "Anniversary"
	quote.SelectedEntities = []string{"Velaa Private Island"}
	quote.DateRange.CheckIn = date("2026-02-01")
	quote.Contact = Contact{
		FullName:         "Noah Reed",
		PhoneCountryCode: "+960",
		Phone:            "5550100",
		Email:            "noah@example.com",
		GuestCount:       3,
		MealPlanChoice:   "Half Board",
		Budget:           "12000",
		BudgetType:       "total",
		Notes:            "Sunset side please",
	}

	emptyOptional := NewDraft()
	emptyOptional.Contact = Contact{GuestCount: 1}

	tests := []struct {
		name  string
		flow  Flow
		draft Draft
	}{
		{"fresh plan", PlanTripFlow, NewDraft()},
		{"fresh quote", ResortQuoteFlow, NewDraft()},
		{"plan in progress", PlanTripFlow, plan},
		{"quote with partial range", ResortQuoteFlow, quote},
		{"empty optional fields", PlanTripFlow, emptyOptional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRoundTrip(t, tt.flow, tt.draft)
		})
	}
}

func TestDraftStore_RoundTripRandomDrafts(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, flow := range []Flow{PlanTripFlow, ResortQuoteFlow} {
		for i := 0; i < 200; i++ {
			assertRoundTrip(t, flow, randomDraft(rng, flow))
		}
	}
}

func assertRoundTrip(t *testing.T, flow Flow, d Draft) {
	t.Helper()
	store := NewDraftStore(drafts.NewMemorySlots(), "k", flow, logging.Default(), nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, d))
	got, restored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, d, got)
}

var roundTripResorts = []string{"Soneva Fushi", "Velaa Private Island", "Gili Lankanfushi", "Cheval Blanc Randheli"}

// randomDraft builds a draft that already satisfies every stored invariant.
func randomDraft(rng *rand.Rand, flow Flow) Draft {
	d := NewDraft()
	d.HighestStep = 1 + rng.Intn(flow.Total())
	d.CurrentStep = 1 + rng.Intn(d.HighestStep)

	switch rng.Intn(3) {
	case 1:
		d.Intent = Intents[rng.Intn(len(Intents))]
	case 2:
		d.Intent = "Babymoon in March"
	}

	for _, i := range rng.Perm(len(ExperienceTags))[:rng.Intn(MaxTags+1)] {
		d.SelectedTags = append(d.SelectedTags, ExperienceTags[i])
	}
	for _, p := range Preferences {
		if rng.Intn(2) == 0 {
			d.PreferenceToggles[p.Key] = p.Options[rng.Intn(2)]
		}
	}
	for _, i := range rng.Perm(len(roundTripResorts))[:rng.Intn(MaxResorts+1)] {
		d.SelectedEntities = append(d.SelectedEntities, roundTripResorts[i])
	}

	start := date("2026-02-01").AddDays(rng.Intn(300))
	switch rng.Intn(3) {
	case 1:
		d.DateRange.CheckIn = start
	case 2:
		d.DateRange.CheckIn = start
		d.DateRange.CheckOut = start.AddDays(1 + rng.Intn(14))
	}

	d.Contact.GuestCount = MinGuests + rng.Intn(MaxGuests)
	if rng.Intn(2) == 0 {
		d.Contact.FullName = "Guest " + strconv.Itoa(rng.Intn(1000))
		d.Contact.Email = "guest" + strconv.Itoa(rng.Intn(1000)) + "@example.com"
		d.Contact.Phone = strconv.Itoa(7000000 + rng.Intn(1000000))
	}
	if rng.Intn(2) == 0 {
		d.Contact.MealPlanChoice = MealPlans[rng.Intn(len(MealPlans))]
		d.Contact.BudgetType = BudgetTypes[rng.Intn(len(BudgetTypes))]
		d.Contact.Budget = strconv.Itoa(1000 * (1 + rng.Intn(50)))
	}
	if rng.Intn(4) == 0 {
		d.Contact.PhoneCountryCode = ""
		d.Contact.Notes = "Quiet villa, late checkout"
	}
	return d
}

func TestDraftStore_EmptySlotIsFresh(t *testing.T) {
	store := NewDraftStore(drafts.NewMemorySlots(), "k", PlanTripFlow, nil, nil)

	got, restored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Equal(t, NewDraft(), got)
	assert.Equal(t, "+44", got.Contact.PhoneCountryCode)
	assert.Equal(t, 2, got.Contact.GuestCount)
}

func TestDraftStore_CorruptBlobIsFresh(t *testing.T) {
	slots := drafts.NewMemorySlots()
	ctx := context.Background()
	require.NoError(t, slots.Put(ctx, "k", []byte(`{"currentStep": "three"`)))
	store := NewDraftStore(slots, "k", PlanTripFlow, logging.Default(), nil)

	got, restored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Equal(t, NewDraft(), got)
}

func TestDraftStore_NormalizesStoredDraft(t *testing.T) {
	slots := drafts.NewMemorySlots()
	ctx := context.Background()
	blob := `{
		"currentStep": 9,
		"highestStep": 9,
		"selectedTags": ["Spa", "Spa", "Food", "Yoga", "Diving"],
		"preferenceToggles": {"villa": "Treehouse", "transfer": "Seaplane"},
		"selectedEntities": ["Velaa Private Island"],
		"dateRange": {"checkIn": "2026-03-15", "checkOut": "2026-03-10"},
		"contact": {"guestCount": 0}
	}`
	require.NoError(t, slots.Put(ctx, "k", []byte(blob)))
	store := NewDraftStore(slots, "k", ResortQuoteFlow, logging.Default(), nil)

	got, restored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, 3, got.CurrentStep)
	assert.Equal(t, 3, got.HighestStep)
	assert.Equal(t, []string{"Spa", "Food", "Yoga"}, got.SelectedTags)
	assert.Equal(t, map[string]string{"transfer": "Seaplane"}, got.PreferenceToggles)
	assert.False(t, got.DateRange.Complete(), "an inverted range is not kept whole")
	assert.Equal(t, 1, got.Contact.GuestCount)
}

func TestDraftStore_TransportError(t *testing.T) {
	slots := newCountingSlots()
	slots.err = errNetwork
	store := NewDraftStore(slots, "k", PlanTripFlow, logging.Default(), nil)
	ctx := context.Background()

	_, _, err := store.Load(ctx)
	assert.ErrorIs(t, err, errNetwork)

	err = store.Save(ctx, NewDraft())
	assert.ErrorIs(t, err, errNetwork)
}

func TestDraftStore_Clear(t *testing.T) {
	slots := drafts.NewMemorySlots()
	store := NewDraftStore(slots, "k", PlanTripFlow, logging.Default(), nil)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, NewDraft()))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, slots.Len())
}
