package types

import "time"

// Post as stored at registration time, with its creator joined in.
type Post struct {
	Id             string        `json:"_id"`
	Creator        Creator       `json:"creator"`
	Signature      string        `json:"signature"`
	VerificationId string        `json:"verificationId"`
	Cid            string        `json:"cid"`
	Timestamp      time.Time     `json:"timestamp"`
	ReplyingTo     []PostReplyTo `json:"replyingTo,omitempty"`
}

type PostReplyTo struct {
	Address string `json:"address"`
	Cid     string `json:"cid"`
}

type Creator struct {
	Id             string    `json:"_id"`
	Address        string    `json:"address"`
	Username       string    `json:"username"`
	Name           string    `json:"name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Website        string    `json:"website,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
