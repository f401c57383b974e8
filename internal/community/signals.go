// Package community derives circle signals, community paths and intro request
// outcomes for people and companies. Every result is a deterministic function of
// its input string.
package community

import (
	"fmt"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
)

// maxSignals caps the signals returned for one person.
const maxSignals = 3

var (
	personIntroTypes  = []string{"founders", "investors", "former colleagues", "design leaders"}
	companyIntroTypes = []string{"founders", "investors", "product leaders", "engineers"}
)

// introNamespace scopes intro request ids.
var introNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://kue.app/community/intro"))

// Hash is a 32-bit polynomial string hash over UTF-16 code units, made non-negative.
func Hash(s string) int {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return int(n)
}

// Signals returns up to three circle signals for personID. Unknown people yield nil.
// homeCompany is never offered as a bridge company.
func Signals(ds *dataset.Dataset, personID, homeCompany string) []models.CommunitySignal {
	person, ok := ds.Person(personID)
	if !ok {
		return nil
	}

	h := Hash(personID)
	var signals []models.CommunitySignal

	var companyID, companyName string
	if work := ds.WorkHistoryOf(personID); len(work) > 0 {
		companyID = work[0].CompanyID
		if c, ok := ds.Company(companyID); ok {
			companyName = c.Name
		}
	} else {
		companyName = person.Company
	}
	if companyName != "" {
		signals = append(signals, models.CommunitySignal{
			Type:    models.SignalPeopleKnow,
			Message: fmt.Sprintf("%d people in your circle know someone at %s", 2+h%5, companyName),
		})
	}

	if h%3 != 0 {
		signals = append(signals, models.CommunitySignal{
			Type:    models.SignalCommonIntro,
			Message: "Commonly introduced via " + personIntroTypes[h%len(personIntroTypes)],
		})
	}

	var bridges []models.Company
	for _, c := range ds.Companies() {
		if c.ID != companyID && c.Name != homeCompany {
			bridges = append(bridges, c)
		}
	}
	if h%4 < 3 && len(bridges) > 0 {
		signals = append(signals, models.CommunitySignal{
			Type:    models.SignalFrequentConnection,
			Message: "Frequently connected through " + bridges[h%len(bridges)].Name,
		})
	}

	if len(signals) > maxSignals {
		signals = signals[:maxSignals]
	}
	return signals
}

// SignalsForCompany returns the circle signals for a company name.
func SignalsForCompany(name string) []models.CommunitySignal {
	h := Hash(name)
	return []models.CommunitySignal{
		{
			Type:    models.SignalPeopleKnow,
			Message: fmt.Sprintf("%d people in your circle know someone at %s", 3+h%6, name),
		},
		{
			Type:    models.SignalCommonIntro,
			Message: "Commonly introduced via " + companyIntroTypes[h%len(companyIntroTypes)],
		},
	}
}

// Path reports whether someone in the circle has reached targetID before.
// It returns false for roughly two in five targets and for unknown people.
func Path(ds *dataset.Dataset, targetID string) (models.CommunityPath, bool) {
	h := Hash(targetID)
	if h%5 < 2 {
		return models.CommunityPath{}, false
	}
	person, ok := ds.Person(targetID)
	if !ok {
		return models.CommunityPath{}, false
	}
	return models.CommunityPath{
		TargetID:    targetID,
		Available:   true,
		Message:     fmt.Sprintf("Someone in your circle has successfully connected to %s before.", person.Name),
		Respondents: 1 + h%2,
	}, true
}

// RequestIntro returns the outcome of asking the circle for an intro to targetID.
// About one target in three gets a response.
func RequestIntro(targetID string) models.IntroRequestResult {
	res := models.IntroRequestResult{
		RequestID: IntroRequestID(targetID),
		TargetID:  targetID,
		Status:    models.IntroOpen,
		Message:   "No one responded yet",
	}
	if Hash(targetID)%3 == 0 {
		res.Status = models.IntroResponded
		res.Message = "1 person is open to helping"
	}
	return res
}

// IntroRequestID is the name-based id for intro requests about targetID.
func IntroRequestID(targetID string) string {
	return uuid.NewSHA1(introNamespace, []byte(targetID)).String()
}
