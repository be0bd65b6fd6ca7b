package rewards

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrUnknownOutfit     = errors.New("rewards: unknown outfit")
	ErrAlreadyOwned      = errors.New("rewards: outfit already owned")
	ErrNotOwned          = errors.New("rewards: outfit not owned")
	ErrInsufficientFunds = errors.New("rewards: insufficient funds")
)

// NoOutfit is the outfit ID that takes the current outfit off.
const NoOutfit = "default"

// Outfit is an item the companion can buy with coins and wear.
type Outfit struct {
	ID          string
	Name        string
	Emoji       string
	Cost        int
	Description string
}

// WithCatalog sets the outfits offered by Buy. Themes dress the same IDs
// under different names, so the catalogue comes from the active theme.
func (s *Service) WithCatalog(outfits []Outfit) *Service {
	s.catalog = outfits
	return s
}

// Catalog returns the outfits on offer.
func (s *Service) Catalog() []Outfit {
	return s.catalog
}

// Outfit looks up an outfit of the catalogue by ID.
func (s *Service) Outfit(id string) (Outfit, bool) {
	for _, o := range s.catalog {
		if o.ID == id {
			return o, true
		}
	}
	return Outfit{}, false
}

// CanAfford reports whether the companion's funds cover o.
func (c Companion) CanAfford(o Outfit) bool {
	return c.Funds >= o.Cost
}

// Buy spends coins on an outfit and puts it on. The spend is logged as a
// purchase award with a negative amount.
func (s *Service) Buy(ctx context.Context, outfitID string) (Companion, error) {
	o, ok := s.Outfit(outfitID)
	if !ok {
		return Companion{}, fmt.Errorf("outfit %q: %w", outfitID, ErrUnknownOutfit)
	}
	comp, err := s.Companion(ctx)
	if err != nil {
		return Companion{}, err
	}
	if comp.Owns(o.ID) {
		return comp, fmt.Errorf("outfit %q: %w", o.ID, ErrAlreadyOwned)
	}
	if !comp.CanAfford(o) {
		return comp, fmt.Errorf("%s costs %d coins, have %d: %w", o.Name, o.Cost, comp.Funds, ErrInsufficientFunds)
	}

	comp.Funds -= o.Cost
	comp.Outfits = append(comp.Outfits, o.ID)
	comp.CurrentOutfit = o.ID
	if err := s.saveCompanion(ctx, comp); err != nil {
		return Companion{}, err
	}
	if err := s.persist(ctx, []Award{s.newAward(AwardPurchase, -o.Cost, "", "Bought "+o.Name)}); err != nil {
		return Companion{}, err
	}
	s.log.Info("outfit bought", zap.String("outfit", o.ID), zap.Int("funds", comp.Funds))
	return comp, nil
}

// Wear puts on an owned outfit. NoOutfit or an empty ID takes it off.
func (s *Service) Wear(ctx context.Context, outfitID string) (Companion, error) {
	comp, err := s.Companion(ctx)
	if err != nil {
		return Companion{}, err
	}
	switch {
	case outfitID == "" || outfitID == NoOutfit:
		comp.CurrentOutfit = ""
	case !comp.Owns(outfitID):
		return comp, fmt.Errorf("outfit %q: %w", outfitID, ErrNotOwned)
	default:
		comp.CurrentOutfit = outfitID
	}
	if err := s.saveCompanion(ctx, comp); err != nil {
		return Companion{}, err
	}
	return comp, nil
}
