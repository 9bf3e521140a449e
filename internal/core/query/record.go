// Package query implements the in-memory filter/aggregation pipeline the
// dashboard views run over their cached record sets. Every criteria change
// triggers a full, synchronous recompute: filtered view first, then a pure
// fold for the summary statistics, then pagination as a separate slicing
// step. Nothing here talks to storage.
package query

import (
	"time"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
)

// Item is a flattened challan line item carried by a Record.
type Item struct {
	Category string `json:"category"`
	Standard string `json:"standard,omitempty"`
	Quantity int    `json:"quantity"`
}

// Record is the canonical flattened view of any listable domain record
// (challan, student, visit, payment). Fields holds the searchable scalar
// fields by name; a field a record does not have is simply absent from the
// map.
type Record struct {
	ID        string            `json:"id"`
	Owner     string            `json:"owner"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields"`
	Items     []Item            `json:"items,omitempty"`
}

// FromChallan adapts a normalized challan for the pipeline.
func FromChallan(c *domain.Challan) Record {
	r := Record{
		ID:        c.ID,
		Owner:     c.CounsellorID,
		Timestamp: c.CreatedAt,
		Fields: map[string]string{
			"challan_number": c.ChallanNumber,
			"counsellor_id":  c.CounsellorID,
			"centre":         c.Centre,
			"status":         challanStatus(c),
		},
	}
	for _, it := range c.Items {
		r.Items = append(r.Items, Item{
			Category: string(it.Category),
			Standard: it.Standard,
			Quantity: it.Quantity,
		})
	}
	return r
}

func challanStatus(c *domain.Challan) string {
	switch {
	case c.Received:
		return "received"
	case c.Given:
		return "given"
	default:
		return "pending"
	}
}

// FromStudent adapts a student record for the pipeline.
func FromStudent(s *domain.Student) Record {
	return Record{
		ID:        s.ID,
		Owner:     s.CounsellorID,
		Timestamp: s.RegisteredAt,
		Fields: map[string]string{
			"name":     s.Name,
			"standard": s.Standard,
			"school":   s.School,
			"phone":    s.Phone,
			"centre":   s.Centre,
		},
	}
}

// FromVisit adapts a visit record for the pipeline.
func FromVisit(v *domain.Visit) Record {
	return Record{
		ID:        v.ID,
		Owner:     v.CounsellorID,
		Timestamp: v.VisitedAt,
		Fields: map[string]string{
			"place":   v.Place,
			"purpose": v.Purpose,
		},
	}
}

// FromPayment adapts a payment record for the pipeline.
func FromPayment(p *domain.Payment) Record {
	return Record{
		ID:        p.ID,
		Owner:     p.CounsellorID,
		Timestamp: p.PaidAt,
		Fields: map[string]string{
			"receipt_no":   p.ReceiptNo,
			"student_name": p.StudentName,
			"mode":         p.Mode,
		},
	}
}
