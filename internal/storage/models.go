package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const DateLayout = "2006-01-02"

// Note is identified by its path.
type Note struct {
	Path      string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// AddTag appends tag unless it is already present and reports whether the
// note changed.
func (n *Note) AddTag(tag string) bool {
	if tag == "" || n.HasTag(tag) {
		return false
	}
	n.Tags = append(n.Tags, tag)
	return true
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

func ParsePriority(v string) (Priority, error) {
	switch v {
	case "Low":
		return PriorityLow, nil
	case "Medium":
		return PriorityMedium, nil
	case "High":
		return PriorityHigh, nil
	}
	return PriorityLow, fmt.Errorf("unknown priority %q", v)
}

func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityLow || p > PriorityHigh {
		return nil, fmt.Errorf("unknown priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Date is a calendar day without a time of day.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Project     *string   `json:"project"`
	Priority    Priority  `json:"priority"`
	DueDate     *Date     `json:"due_date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	// SubTasks is carried through load and save but never traversed.
	SubTasks []Task `json:"sub_tasks"`
}

// MarshalJSON writes an empty sub_tasks array instead of null.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	p := plain(t)
	if p.SubTasks == nil {
		p.SubTasks = []Task{}
	}
	return json.Marshal(p)
}
