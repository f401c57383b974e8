// Package warmpath finds people who can introduce the current user to a target
// and drafts the intro request.
package warmpath

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/pkg/utils"
)

// ErrUnknownPerson is returned when a connector or target id does not resolve.
var ErrUnknownPerson = errors.New("unknown person")

// noContactDays stands in for "never" when no interaction exists.
const noContactDays = 999

const (
	confidenceStrong   = "This path is strong because the relationship is recent and direct."
	confidenceModerate = "This path is viable — there's a real connection, though less recent."
	confidenceWeak     = "This path exists but may require more context before reaching out."
)

// FindWarmPaths returns every path from the current user (or the co-founder) to
// targetID through one connector, strongest first. Unknown targets yield nil.
func FindWarmPaths(ds *dataset.Dataset, hubs models.Hubs, now time.Time, targetID string) []models.WarmPath {
	target, ok := ds.Person(targetID)
	if !ok {
		return nil
	}

	var paths []models.WarmPath
	for _, connector := range ds.People() {
		if connector.ID == hubs.CurrentUserID || connector.ID == targetID || connector.ID == hubs.CofounderID {
			continue
		}
		if !knows(ds, connector.ID, targetID) {
			continue
		}

		viaUser := knows(ds, hubs.CurrentUserID, connector.ID)
		viaCofounder := hubs.CofounderID != "" && ds.HasContact(hubs.CofounderID, connector.ID)
		if !viaUser && !viaCofounder {
			continue
		}

		strength, confidence := grade(ds, now, connector.ID, targetID)
		paths = append(paths, models.WarmPath{
			Connector:        connector,
			Target:           target,
			Strength:         strength,
			Reason:           buildReason(ds, hubs, now, connector, target, viaUser),
			Confidence:       confidence,
			RelationshipType: relationshipType(ds, connector.ID, targetID),
		})
	}

	sortByStrength(paths)
	return paths
}

// sortByStrength orders strong, moderate then weak, keeping discovery order within a grade.
func sortByStrength(paths []models.WarmPath) {
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Strength.Rank() < paths[j].Strength.Rank()
	})
}

// GenerateIntroDraft returns a short message asking connector to introduce target.
func GenerateIntroDraft(connector, target models.Person) string {
	return fmt.Sprintf("Hey %s — I noticed you've worked with %s before.\n"+
		"I'm exploring a conversation with %s and wanted to see if you'd be comfortable making an intro.\n"+
		"Totally fine if not.",
		utils.FirstName(connector.Name), target.Name, utils.FirstName(target.Name))
}

// knows reports direct contact or a shared employer between a and b.
func knows(ds *dataset.Dataset, a, b string) bool {
	return ds.HasContact(a, b) || len(ds.SharedCompanyNames(a, b)) > 0
}

// daysSinceContact floors the days since a and b last interacted, or noContactDays.
func daysSinceContact(ds *dataset.Dataset, now time.Time, a, b string) int {
	last, ok := ds.LastInteraction(a, b)
	if !ok {
		return noContactDays
	}
	return int(math.Floor(last.DaysSince(now)))
}

func grade(ds *dataset.Dataset, now time.Time, connectorID, targetID string) (models.Strength, string) {
	count := ds.InteractionCount(connectorID, targetID)
	days := daysSinceContact(ds, now, connectorID, targetID)
	shared := ds.SharedCompanyNames(connectorID, targetID)

	switch {
	case (count >= 2 && days < 60) || len(shared) > 0:
		return models.StrengthStrong, confidenceStrong
	case count >= 1 || days < 120:
		return models.StrengthModerate, confidenceModerate
	default:
		return models.StrengthWeak, confidenceWeak
	}
}

func buildReason(ds *dataset.Dataset, hubs models.Hubs, now time.Time, connector, target models.Person, viaUser bool) string {
	var parts []string
	switch {
	case viaUser:
		if shared := ds.SharedCompanyNames(hubs.CurrentUserID, connector.ID); len(shared) > 0 {
			parts = append(parts, fmt.Sprintf("You worked with %s at %s", connector.Name, shared[0]))
		} else {
			parts = append(parts, fmt.Sprintf("You've been in touch with %s", connector.Name))
		}
	default:
		parts = append(parts, fmt.Sprintf("Your co-founder %s knows %s", hubs.CofounderName, connector.Name))
	}

	if shared := ds.SharedCompanyNames(connector.ID, target.ID); len(shared) > 0 {
		parts = append(parts, fmt.Sprintf("%s worked with %s at %s", connector.Name, target.Name, shared[0]))
	}

	if ds.InteractionCount(connector.ID, target.ID) > 0 {
		days := daysSinceContact(ds, now, connector.ID, target.ID)
		switch {
		case days < 30:
			parts = append(parts, "and they connected recently")
		case days < 90:
			parts = append(parts, "and met in the last quarter")
		}
	}

	return strings.Join(parts, ", ") + "."
}

func relationshipType(ds *dataset.Dataset, connectorID, targetID string) string {
	if shared := ds.SharedCompanyNames(connectorID, targetID); len(shared) > 0 {
		return "Former colleagues at " + shared[0]
	}
	if len(ds.MeetingsWith(connectorID, targetID)) > 0 {
		return "Met in shared meetings"
	}
	if len(ds.EmailsBetween(connectorID, targetID)) > 0 {
		return "Email correspondence"
	}
	return "Professional contact"
}

// Finder answers warm path and intro draft requests against the live snapshot.
type Finder struct {
	holder *dataset.Holder
	hubs   models.Hubs
	now    func() time.Time
	logger *zap.Logger
}

// NewFinder creates a Finder. A nil now uses time.Now and a nil logger discards output.
func NewFinder(holder *dataset.Holder, hubs models.Hubs, now func() time.Time, logger *zap.Logger) *Finder {
	if now == nil {
		now = time.Now
	}
	return &Finder{holder: holder, hubs: hubs, now: now, logger: utils.OrNop(logger)}
}

// Paths returns the warm paths to targetID. The target is nil when unknown.
func (f *Finder) Paths(targetID string) *models.WarmPathResponse {
	ds := f.holder.Current()
	resp := &models.WarmPathResponse{TargetID: targetID, Paths: []models.WarmPath{}}
	if target, ok := ds.Person(targetID); ok {
		resp.Target = &target
	}
	if paths := FindWarmPaths(ds, f.hubs, f.now(), targetID); paths != nil {
		resp.Paths = paths
	}
	resp.Total = len(resp.Paths)

	f.logger.Debug("warm paths",
		zap.String("target", targetID),
		zap.Int("paths", resp.Total))
	return resp
}

// Draft builds the intro message for a connector and target pair.
func (f *Finder) Draft(req *models.IntroDraftRequest) (*models.IntroDraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ds := f.holder.Current()
	connector, ok := ds.Person(req.ConnectorID)
	if !ok {
		return nil, fmt.Errorf("connector %q: %w", req.ConnectorID, ErrUnknownPerson)
	}
	target, ok := ds.Person(req.TargetID)
	if !ok {
		return nil, fmt.Errorf("target %q: %w", req.TargetID, ErrUnknownPerson)
	}
	return &models.IntroDraftResponse{
		Connector: connector,
		Target:    target,
		Draft:     GenerateIntroDraft(connector, target),
	}, nil
}
