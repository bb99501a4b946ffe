package books

import (
	"testing"
	"time"

	"github.com/oddsdesk/marketfeed/internal/pkg/models"
)

func TestClassifyMarket(t *testing.T) {
	tests := []struct {
		name string
		want MarketKind
	}{
		{"Moneyline", KindMoneyline},
		{"MONEY_LINE", KindMoneyline},
		{"Point Spread", KindSpread},
		{"MATCH_HANDICAP_(2-WAY)", KindSpread},
		{"Total Points", KindTotal},
		{"Over/Under", KindTotal},
		{"First Basket Scorer", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyMarket(tt.name); got != tt.want {
			t.Errorf("ClassifyMarket(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		want     MarketKind
	}{
		{
			"over/under means total",
			[]Outcome{{Label: "Over 220.5"}, {Label: "Under 220.5"}},
			KindTotal,
		},
		{
			"side hint total",
			[]Outcome{{Side: "Over", Line: models.Float(220.5)}, {Side: "Under", Line: models.Float(220.5)}},
			KindTotal,
		},
		{
			"own line means spread",
			[]Outcome{{Label: "Team A", Line: models.Float(-3.5)}, {Label: "Team B", Line: models.Float(3.5)}},
			KindSpread,
		},
		{
			"bare outcomes mean moneyline",
			[]Outcome{{Label: "Team A"}, {Label: "Team B"}},
			KindMoneyline,
		},
		{
			"nothing",
			nil,
			KindUnknown,
		},
	}
	for _, tt := range tests {
		if got := InferKind(tt.outcomes); got != tt.want {
			t.Errorf("%s: InferKind = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func buildInput() EventInput {
	return EventInput{
		Book:        "TestBook",
		Sport:       "nba",
		AwayRaw:     "Los Angeles Lakers",
		HomeRaw:     "Boston Celtics",
		Away:        "LAL",
		Home:        "BOS",
		Start:       time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC),
		RetrievedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// Each spread side keeps its own published line; neither is derived by
// negating the other.
func TestBuildEventSpreadSidesIndependent(t *testing.T) {
	in := buildInput()
	in.Markets = []Market{{
		Name: "Point Spread",
		Outcomes: []Outcome{
			{Label: "Los Angeles Lakers -3.5", Line: models.Float(-3.5), Price: "-110"},
			{Label: "Boston Celtics +4", Line: models.Float(4), Price: "-112"},
		},
	}}
	me, ok := BuildEvent(in)
	if !ok {
		t.Fatal("BuildEvent returned false")
	}
	if me.AwaySpread == nil || *me.AwaySpread != -3.5 {
		t.Errorf("AwaySpread = %v, want -3.5", me.AwaySpread)
	}
	if me.HomeSpread == nil || *me.HomeSpread != 4 {
		t.Errorf("HomeSpread = %v, want 4 (own value, not negated away)", me.HomeSpread)
	}
	if me.AwaySpreadPrice == nil || *me.AwaySpreadPrice != "-110" {
		t.Errorf("AwaySpreadPrice = %v, want -110", me.AwaySpreadPrice)
	}
}

// Labels match against either the raw or aliased team names.
func TestBuildEventLabelMatching(t *testing.T) {
	in := buildInput()
	in.Markets = []Market{{
		Name: "Moneyline",
		Outcomes: []Outcome{
			{Label: "LAL", Price: "+150"},
			{Label: "Boston Celtics", Price: "-170"},
		},
	}}
	me, ok := BuildEvent(in)
	if !ok {
		t.Fatal("BuildEvent returned false")
	}
	if me.AwayMoneyline == nil || *me.AwayMoneyline != "+150" {
		t.Errorf("AwayMoneyline = %v, want +150", me.AwayMoneyline)
	}
	if me.HomeMoneyline == nil || *me.HomeMoneyline != "-170" {
		t.Errorf("HomeMoneyline = %v, want -170", me.HomeMoneyline)
	}
	if me.Game != "LAL @ BOS" {
		t.Errorf("Game = %q, want LAL @ BOS", me.Game)
	}
}

// When a book publishes several markets of one kind, the first in payload
// order sticks.
func TestBuildEventFirstMatchWins(t *testing.T) {
	in := buildInput()
	in.Markets = []Market{
		{
			Name: "Total Points",
			Outcomes: []Outcome{
				{Label: "Over 220.5", Line: models.Float(220.5), Price: "-105"},
				{Label: "Under 220.5", Line: models.Float(220.5), Price: "-115"},
			},
		},
		{
			Name: "Total Points Alternate",
			Outcomes: []Outcome{
				{Label: "Over 215.5", Line: models.Float(215.5), Price: "-140"},
				{Label: "Under 215.5", Line: models.Float(215.5), Price: "+120"},
			},
		},
	}
	me, ok := BuildEvent(in)
	if !ok {
		t.Fatal("BuildEvent returned false")
	}
	if me.Total == nil || *me.Total != 220.5 {
		t.Errorf("Total = %v, want 220.5 (first market wins)", me.Total)
	}
	if me.OverPrice == nil || *me.OverPrice != "-105" {
		t.Errorf("OverPrice = %v, want -105", me.OverPrice)
	}
}

func TestBuildEventNoRecognizedMarkets(t *testing.T) {
	in := buildInput()
	in.Markets = []Market{{
		Name:     "First Basket Scorer",
		Outcomes: []Outcome{{Label: "Some Player", Price: "+900"}},
	}}
	if me, ok := BuildEvent(in); ok {
		t.Fatalf("BuildEvent = %+v, want ok=false", me)
	}
}

func TestBuildEventUnknownLabelIgnored(t *testing.T) {
	in := buildInput()
	in.Markets = []Market{{
		Name: "Moneyline",
		Outcomes: []Outcome{
			{Label: "Los Angeles Lakers", Price: "+150"},
			{Label: "Tie", Price: "+800"},
		},
	}}
	me, ok := BuildEvent(in)
	if !ok {
		t.Fatal("BuildEvent returned false")
	}
	if me.HomeMoneyline != nil {
		t.Errorf("HomeMoneyline = %v, want nil (Tie ignored)", me.HomeMoneyline)
	}
}

func TestStripLabelLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Team A -3.5", "Team A"},
		{"Team B +4", "Team B"},
		{"Philadelphia 76ers", "Philadelphia 76ers"},
		{"Over 220.5", "Over 220.5"},
		{"Team A", "Team A"},
	}
	for _, tt := range tests {
		if got := stripLabelLine(tt.in); got != tt.want {
			t.Errorf("stripLabelLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
