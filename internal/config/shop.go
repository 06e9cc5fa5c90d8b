package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/superior-auto/frontdesk/internal/timeutil"
)

// Service is one bookable service from the shop catalogue.
type Service struct {
	Name            string `json:"name"`
	Price           string `json:"price,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Hours is the shop's daily business window.
type Hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Matcher carries the fuzzy service matcher tuning. The defaults were
// arrived at empirically, so they stay configurable rather than hard-coded.
type Matcher struct {
	Threshold       float64 `json:"threshold"`
	TokenWeight     float64 `json:"token_weight"`
	CharacterWeight float64 `json:"character_weight"`
}

// Shop is the validated shop configuration consumed by the agent.
type Shop struct {
	ShopName        string    `json:"shop_name"`
	Services        []Service `json:"services"`
	Hours           Hours     `json:"hours"`
	IntervalMinutes int       `json:"booking_interval_minutes"`
	LookaheadDays   int       `json:"max_lookahead_days"`
	Timezone        string    `json:"timezone"`
	Matcher         Matcher   `json:"matcher"`
}

// LoadShop reads and validates the shop configuration file.
func LoadShop(path string) (*Shop, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shop config: %w", err)
	}

	var shop Shop
	if err := json.Unmarshal(raw, &shop); err != nil {
		return nil, fmt.Errorf("failed to parse shop config: %w", err)
	}

	shop.applyDefaults()
	if err := shop.Validate(); err != nil {
		return nil, fmt.Errorf("shop config validation failed: %w", err)
	}
	return &shop, nil
}

func (s *Shop) applyDefaults() {
	if s.ShopName == "" {
		s.ShopName = "Superior Auto Clinic"
	}
	if s.Hours.Open == "" {
		s.Hours.Open = "09:00"
	}
	if s.Hours.Close == "" {
		s.Hours.Close = "17:00"
	}
	if s.IntervalMinutes == 0 {
		s.IntervalMinutes = 30
	}
	if s.LookaheadDays == 0 {
		s.LookaheadDays = 7
	}
	if s.Timezone == "" {
		s.Timezone = "America/Toronto"
	}
	if s.Matcher.Threshold == 0 {
		s.Matcher.Threshold = 0.5
	}
	if s.Matcher.TokenWeight == 0 && s.Matcher.CharacterWeight == 0 {
		s.Matcher.TokenWeight = 0.8
		s.Matcher.CharacterWeight = 0.2
	}
	for i := range s.Services {
		if s.Services[i].DurationMinutes == 0 {
			s.Services[i].DurationMinutes = 30
		}
	}
}

// Validate checks the invariants the agent relies on.
func (s *Shop) Validate() error {
	if len(s.Services) == 0 {
		return fmt.Errorf("at least one service must be defined")
	}
	for _, svc := range s.Services {
		if svc.Name == "" {
			return fmt.Errorf("service name must not be empty")
		}
		if svc.DurationMinutes <= 0 {
			return fmt.Errorf("service %q has non-positive duration", svc.Name)
		}
	}
	if !timeutil.ValidClock(s.Hours.Open) || !timeutil.ValidClock(s.Hours.Close) {
		return fmt.Errorf("hours must be HH:MM, got open=%q close=%q", s.Hours.Open, s.Hours.Close)
	}
	if s.IntervalMinutes <= 0 {
		return fmt.Errorf("booking interval must be positive")
	}
	if s.LookaheadDays <= 0 {
		return fmt.Errorf("lookahead days must be positive")
	}
	if _, fallback := timeutil.ResolveLocation(s.Timezone); fallback && s.Timezone != "" {
		return fmt.Errorf("unknown timezone: %s", s.Timezone)
	}
	return nil
}

// ServiceNames returns the catalogue names in configuration order.
func (s *Shop) ServiceNames() []string {
	names := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}
	return names
}

// FindService looks up a service by case-insensitive exact name.
func (s *Shop) FindService(name string) (Service, bool) {
	for _, svc := range s.Services {
		if strings.EqualFold(svc.Name, name) {
			return svc, true
		}
	}
	return Service{}, false
}
