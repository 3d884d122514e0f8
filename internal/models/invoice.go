package models

// Invoice mirrors an Odoo account.move record. Number holds the move's name.
type Invoice struct {
	ID          int64    `json:"id"`
	RemoteID    int64    `json:"remote_id"`
	Number      *string  `json:"number"`
	AmountTotal *float64 `json:"amount_total"`
}

func (i *Invoice) LocalID() int64      { return i.ID }
func (i *Invoice) ForeignID() int64    { return i.RemoteID }
func (i *Invoice) SetLocalID(id int64) { i.ID = id }
