// Package attendance implements the four-bucket classification of a roster
// against the responses recorded for a single event. It is a pure function
// of its two snapshots and performs no I/O.
package attendance

import (
	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/internal/entity"
)

// Bucket identifies the classification outcome for one member.
type Bucket string

const (
	BucketGoing      Bucket = "going"
	BucketLeave      Bucket = "leave"
	BucketNotGoing   Bucket = "not_going"
	BucketNoResponse Bucket = "no_response"
)

// GoingRow is one attending member. GuestCount is the number of guest
// entries; GuestAdults/GuestKids are person totals across those entries,
// with an absent adults field counting as one adult and an absent kids
// field as zero. Family counts come straight off the response.
type GoingRow struct {
	Name         string         `json:"name"`
	GuestCount   int            `json:"guests"`
	GuestDetails []entity.Guest `json:"guest_details"`
	GuestAdults  int            `json:"guest_adults"`
	GuestKids    int            `json:"guest_kids"`
	FamilyAdults int            `json:"family_adults"`
	FamilyKids   int            `json:"family_kids"`
}

// Row is one member in any of the non-going buckets.
type Row struct {
	Name string `json:"name"`
}

// Summary partitions the roster for one event. Every ACTIVE or LEAVE
// member lands in exactly one bucket, in roster order.
type Summary struct {
	Going      []GoingRow `json:"going"`
	Leave      []Row      `json:"leave"`
	NotGoing   []Row      `json:"not_going"`
	NoResponse []Row      `json:"no_response"`
}

// Classify assigns every roster member to a bucket. The roster must
// already be filtered to ACTIVE/LEAVE members and ordered by sort order;
// responses is a sparse map keyed by member id, where a missing entry
// means the member has not answered yet.
//
// The rules form an ordered decision list, first match wins:
//
//  1. a GOING response wins regardless of membership status, so a member
//     on leave can still attend a specific occasion
//  2. LEAVE members collapse into the leave bucket even when they
//     recorded NOT_GOING, so they never double-count as declining
//  3. ACTIVE with a NOT_GOING response declines
//  4. ACTIVE without a response has not answered
//  5. ACTIVE with an unrecognized stored status also counts as not
//     answered, logged as anomalous rather than rejected
func Classify(roster []entity.Member, responses map[string]entity.Response) *Summary {
	summary := &Summary{
		Going:      []GoingRow{},
		Leave:      []Row{},
		NotGoing:   []Row{},
		NoResponse: []Row{},
	}

	for i := range roster {
		member := &roster[i]
		name := member.ResolvedName()
		resp, answered := responses[member.LineID]

		switch bucketFor(member.Status, resp.Status, answered) {
		case BucketGoing:
			summary.Going = append(summary.Going, goingRow(name, &resp))
		case BucketLeave:
			summary.Leave = append(summary.Leave, Row{Name: name})
		case BucketNotGoing:
			summary.NotGoing = append(summary.NotGoing, Row{Name: name})
		case BucketNoResponse:
			if answered && resp.Status != entity.ResponseStatusGoing && resp.Status != entity.ResponseStatusNotGoing {
				logrus.WithFields(logrus.Fields{
					"member_id": member.LineID,
					"status":    resp.Status,
				}).Warn("Anomalous response status, counting as no response")
			}
			summary.NoResponse = append(summary.NoResponse, Row{Name: name})
		}
	}

	return summary
}

// bucketFor is the total decision function from (membership status,
// response-or-absent) to bucket. Keeping it a single ordered check is what
// guarantees the buckets partition the roster.
func bucketFor(membership entity.MemberStatus, response entity.ResponseStatus, answered bool) Bucket {
	switch {
	case answered && response == entity.ResponseStatusGoing:
		return BucketGoing
	case membership == entity.MemberStatusLeave:
		return BucketLeave
	case answered && response == entity.ResponseStatusNotGoing:
		return BucketNotGoing
	default:
		// covers no response at all and any unknown stored status
		return BucketNoResponse
	}
}

func goingRow(name string, resp *entity.Response) GoingRow {
	row := GoingRow{
		Name:         name,
		GuestCount:   len(resp.Guests),
		GuestDetails: resp.Guests,
		FamilyAdults: resp.FamilyAdults,
		FamilyKids:   resp.FamilyKids,
	}
	if row.GuestDetails == nil {
		row.GuestDetails = []entity.Guest{}
	}
	for i := range resp.Guests {
		row.GuestAdults += resp.Guests[i].AdultCount()
		row.GuestKids += resp.Guests[i].KidCount()
	}
	return row
}
