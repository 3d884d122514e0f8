package models

// Contact mirrors an Odoo res.partner record.
type Contact struct {
	ID       int64   `json:"id"`
	RemoteID int64   `json:"remote_id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
}

func (c *Contact) LocalID() int64      { return c.ID }
func (c *Contact) ForeignID() int64    { return c.RemoteID }
func (c *Contact) SetLocalID(id int64) { c.ID = id }
