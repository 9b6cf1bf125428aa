package schedule

import (
	"sort"
	"time"

	"github.com/dcyoung23/balance-web/internal/models"
)

// Bucket places an item relative to the next two pay anchors.
type Bucket string

const (
	BucketCurrent Bucket = "Current"
	BucketNext    Bucket = "Next"
	BucketFuture  Bucket = "Future"
	BucketUnknown Bucket = "Unknown"
)

// Anchors are the two pay dates derived from the soonest recurring Bill:
// PayCurrent is the earliest bill due date, PayNext the earliest date any
// bill lands on after advancing once. OK is false when the user has no
// active Bill items and no anchoring is possible.
type Anchors struct {
	PayCurrent time.Time
	PayNext    time.Time
	OK         bool
}

// PayAnchors computes the anchors over the active Bill items. A bill whose
// interval cannot be computed still anchors PayCurrent but contributes no
// PayNext candidate.
func PayAnchors(items []models.ScheduleItem) Anchors {
	var a Anchors
	for _, item := range items {
		if !item.Active() || item.Type.Label != TypeBill {
			continue
		}
		if !a.OK || item.CurrentDt.Before(a.PayCurrent) {
			a.PayCurrent = item.CurrentDt
		}
		a.OK = true
		next, err := NextDue(item)
		if err != nil {
			continue
		}
		if a.PayNext.IsZero() || next.Before(a.PayNext) {
			a.PayNext = next
		}
	}
	return a
}

// ClassifiedItem is a schedule item with its effective due date, bucket and
// display fields resolved.
type ClassifiedItem struct {
	models.ScheduleItem
	Due              time.Time `json:"dt"`
	Bucket           Bucket    `json:"schedule_type"`
	FrequencyDisplay string    `json:"frequency_display"`
	PmtSourceDesc    string    `json:"pmt_source_desc,omitempty"`
	PmtMethodDesc    string    `json:"pmt_method_desc,omitempty"`
}

// Classify buckets every active item against the user's pay anchors and
// returns them ordered by effective due date ascending. Items preloaded with
// their Type and Frequency are expected.
func Classify(items []models.ScheduleItem) []ClassifiedItem {
	anchors := PayAnchors(items)

	out := make([]ClassifiedItem, 0, len(items))
	for _, item := range items {
		if !item.Active() {
			continue
		}
		due := EffectiveDue(item)
		out = append(out, ClassifiedItem{
			ScheduleItem:     item,
			Due:              due,
			Bucket:           bucketFor(due, anchors),
			FrequencyDisplay: DisplayFrequency(item),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due)
	})
	return out
}

func bucketFor(due time.Time, a Anchors) Bucket {
	switch {
	case !a.OK:
		return BucketUnknown
	case due.Before(a.PayCurrent):
		return BucketCurrent
	case a.PayNext.IsZero():
		return BucketUnknown
	case due.Before(a.PayNext):
		return BucketNext
	default:
		return BucketFuture
	}
}

// AttachCodeDescriptions resolves pmt-source/pmt-method code descriptions
// onto classified items from the cd lookup rows.
func AttachCodeDescriptions(items []ClassifiedItem, codes []models.Code) {
	desc := make(map[string]string, len(codes))
	for _, c := range codes {
		desc[c.CdGroup+":"+c.Cd] = c.CdDesc
	}
	for i := range items {
		items[i].PmtSourceDesc = desc["pmt-source:"+items[i].PmtSource]
		items[i].PmtMethodDesc = desc["pmt-method:"+items[i].PmtMethod]
	}
}
