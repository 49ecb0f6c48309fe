package converter

import "time"

// SessionRedisModel — сессия консоли в том виде, в каком она лежит в Redis.
type SessionRedisModel struct {
	ID         string         `json:"id"`
	Token      string         `json:"token,omitempty"`
	LoginEmail string         `json:"login_email,omitempty"`
	Form       FormRedisModel `json:"form"`
	CreatedAt  time.Time      `json:"created_at"`
}

type FormRedisModel struct {
	EditingID   *int64 `json:"editing_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	ImageReachable bool `json:"image_reachable,omitempty"`
}
