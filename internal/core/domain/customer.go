package domain

import "time"

// Customer is a client organisation contact that tasks can be attached to.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Contact   int64     `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerSummary is the reduced customer projection embedded in task views.
type CustomerSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Contact int64  `json:"contact"`
}

// Summary returns the projection of c used inside task views.
func (c *Customer) Summary() *CustomerSummary {
	if c == nil {
		return nil
	}
	return &CustomerSummary{ID: c.ID, Name: c.Name, Email: c.Email, Company: c.Company, Contact: c.Contact}
}
