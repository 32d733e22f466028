package telegram

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/communication"
)

var ErrBadPayload = errors.New("invalid command payload")

// payloadKeys maps a payload key to the Draft field it fills.
var payloadKeys = map[string]func(d *app.Draft, v string){
	"title":        func(d *app.Draft, v string) { d.Title = v },
	"date":         func(d *app.Draft, v string) { d.Date = v },
	"responsible":  func(d *app.Draft, v string) { d.Responsible = v },
	"channel":      func(d *app.Draft, v string) { d.Channel = v },
	"audience":     func(d *app.Draft, v string) { d.Audience = v },
	"objective":    func(d *app.Draft, v string) { d.Objective = v },
	"type":         func(d *app.Draft, v string) { d.Type = v },
	"evidence":     func(d *app.Draft, v string) { d.EvidenceLink = v },
	"comprehended": func(d *app.Draft, v string) { d.IsComprehended = v },
	"return":       func(d *app.Draft, v string) { d.ReturnIndicator = v },
	"observations": func(d *app.Draft, v string) { d.Observations = v },
	"status":       func(d *app.Draft, v string) { d.Status = v },
	"budget":       func(d *app.Draft, v string) { d.BudgetedValue = v },
	"spent":        func(d *app.Draft, v string) { d.SpentValue = v },
}

// splitPayload reads "key=value; key=value". Keys are case-insensitive, values keep
// their inner spacing. Empty segments are skipped.
func splitPayload(payload string) (map[string]string, error) {
	pairs := make(map[string]string)
	for _, segment := range strings.Split(payload, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrBadPayload, segment)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrBadPayload, segment)
		}
		pairs[key] = strings.TrimSpace(value)
	}
	return pairs, nil
}

// ParseDraft turns a /register or /update payload into a Draft.
func ParseDraft(payload string) (app.Draft, error) {
	pairs, err := splitPayload(payload)
	if err != nil {
		return app.Draft{}, err
	}

	var d app.Draft
	var unknown []string
	for key, value := range pairs {
		set, ok := payloadKeys[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		set(&d, value)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return app.Draft{}, fmt.Errorf("%w: unknown keys %s", ErrBadPayload, strings.Join(unknown, ", "))
	}
	return d, nil
}

// ParsePredicate turns a /list payload into filters. Only title, channel, status and
// audience are accepted.
func ParsePredicate(payload string) (communication.Predicate, error) {
	pairs, err := splitPayload(payload)
	if err != nil {
		return communication.Predicate{}, err
	}

	var p communication.Predicate
	for key, value := range pairs {
		switch key {
		case "title":
			p.Title = value
		case "channel":
			if p.Channel, err = communication.ParseChannel(value); err != nil {
				return communication.Predicate{}, fmt.Errorf("%w: channel: %v", ErrBadPayload, err)
			}
		case "status":
			if p.Status, err = communication.ParseStatus(value); err != nil {
				return communication.Predicate{}, fmt.Errorf("%w: status: %v", ErrBadPayload, err)
			}
		case "audience":
			if p.Audience, err = communication.ParseAudience(value); err != nil {
				return communication.Predicate{}, fmt.Errorf("%w: audience: %v", ErrBadPayload, err)
			}
		default:
			return communication.Predicate{}, fmt.Errorf("%w: unknown filter %q", ErrBadPayload, key)
		}
	}
	return p, nil
}

// payloadUsage lists the accepted keys for help texts.
func payloadUsage() string {
	keys := make([]string, 0, len(payloadKeys))
	for k := range payloadKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
