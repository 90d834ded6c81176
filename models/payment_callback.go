package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CallbackChannelReturn = "return"
	CallbackChannelNotify = "notify"
)

// PaymentCallback is an audit row per verified inbound gateway callback.
// Applied records whether this delivery actually moved the booking; duplicate
// deliveries are stored with Applied=false.
type PaymentCallback struct {
	gorm.Model

	BookingID    uint   `gorm:"index;column:booking_id" json:"booking_id"`
	TxnRef       string `gorm:"column:txn_ref;size:64" json:"txn_ref"`
	ResponseCode string `gorm:"column:response_code;size:16" json:"response_code"`
	TxnStatus    string `gorm:"column:txn_status;size:16" json:"txn_status"`
	Channel      string `gorm:"column:channel;size:16" json:"channel"`
	Success      bool   `gorm:"column:success" json:"success"`
	Applied      bool   `gorm:"column:applied" json:"applied"`

	RawParams datatypes.JSON `gorm:"column:raw_params" json:"raw_params,omitempty"`
}
