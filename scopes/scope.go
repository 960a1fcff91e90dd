// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package scopes

import (
	"fmt"
	"slices"
	"strings"
)

// Scope is a permission identifier understood by the EVE SSO provider.
type Scope string

// Scopes recognised by the provider.
const (
	// PublicData grants access to public character information.
	PublicData Scope = "publicData"

	// ReadStructures allows reading structure information through the universe endpoints.
	ReadStructures Scope = "esi-universe.read_structures.v1"

	// SearchStructures allows searching for structures the character has access to.
	SearchStructures Scope = "esi-search.search_structures.v1"

	// StructureMarkets allows reading market orders in player-owned structures.
	StructureMarkets Scope = "esi-markets.structure_markets.v1"

	// ReadCharacterOrders allows reading the character's open market orders.
	ReadCharacterOrders Scope = "esi-markets.read_character_orders.v1"

	// ReadLocation allows reading the character's current solar system.
	ReadLocation Scope = "esi-location.read_location.v1"

	// ReadShipType allows reading the character's current ship.
	ReadShipType Scope = "esi-location.read_ship_type.v1"

	// ReadOnline allows reading the character's online status.
	ReadOnline Scope = "esi-location.read_online.v1"

	// ReadWallet allows reading the character's wallet balance and journal.
	ReadWallet Scope = "esi-wallet.read_character_wallet.v1"

	// ReadAssets allows reading the character's assets.
	ReadAssets Scope = "esi-assets.read_assets.v1"

	// ReadSkills allows reading the character's trained skills.
	ReadSkills Scope = "esi-skills.read_skills.v1"

	// ReadSkillQueue allows reading the character's skill queue.
	ReadSkillQueue Scope = "esi-skills.read_skillqueue.v1"

	// ReadMail allows reading the character's EVE mail.
	ReadMail Scope = "esi-mail.read_mail.v1"
)

// catalog is sorted by canonical string.
var catalog = func() []Scope {
	all := []Scope{
		PublicData,
		ReadStructures,
		SearchStructures,
		StructureMarkets,
		ReadCharacterOrders,
		ReadLocation,
		ReadShipType,
		ReadOnline,
		ReadWallet,
		ReadAssets,
		ReadSkills,
		ReadSkillQueue,
		ReadMail,
	}
	slices.SortFunc(all, compare)
	return all
}()

// String returns the canonical string form of the scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid reports whether the scope belongs to the provider catalog.
func (s Scope) IsValid() bool {
	_, found := slices.BinarySearchFunc(catalog, s, compare)
	return found
}

// All returns every known scope in canonical order.
func All() []Scope {
	return slices.Clone(catalog)
}

// Parse converts a canonical scope string into a Scope.
// Surrounding whitespace is ignored; unknown values return ErrUnknownScope.
func Parse(value string) (Scope, error) {
	s := Scope(strings.TrimSpace(value))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, value)
	}
	return s, nil
}

// ParseList parses each value with Parse and stops at the first unknown scope.
// A value containing spaces is split, so a rendered scope string round-trips.
func ParseList(values ...string) ([]Scope, error) {
	result := make([]Scope, 0, len(values))
	for _, value := range values {
		for _, field := range strings.Fields(value) {
			s, err := Parse(field)
			if err != nil {
				return nil, err
			}
			result = append(result, s)
		}
	}
	return result, nil
}

// compare orders scopes lexicographically by canonical string.
func compare(a, b Scope) int {
	return strings.Compare(a.String(), b.String())
}
