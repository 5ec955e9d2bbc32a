package store

import (
	"context"
	"fmt"
	"time"

	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/firestore"
)

type firestorePost struct {
	Creator        string                 `firestore:"creator"`
	Signature      string                 `firestore:"signature"`
	VerificationId string                 `firestore:"verificationId"`
	Cid            string                 `firestore:"cid"`
	Timestamp      time.Time              `firestore:"timestamp"`
	ReplyingTo     []firestorePostReplyTo `firestore:"replyingTo"`
}

type firestorePostReplyTo struct {
	Address string `firestore:"address"`
	Cid     string `firestore:"cid"`
}

type firestoreUser struct {
	Address        string    `firestore:"address"`
	Username       string    `firestore:"username"`
	Name           string    `firestore:"name"`
	Bio            string    `firestore:"bio"`
	Email          string    `firestore:"email"`
	ProfilePicture string    `firestore:"profilePicture"`
	Website        string    `firestore:"website"`
	Timestamp      time.Time `firestore:"timestamp"`
}

type FirestoreStore struct {
	db *firestore.Client
}

func NewFirestoreStore(db *firestore.Client) *FirestoreStore {
	return &FirestoreStore{db: db}
}

func (s *FirestoreStore) FindByVerificationId(ctx context.Context, id string) (*types.Post, error) {
	doc, err := tools.FindFirestoreDocument(ctx, s.db, types.FIREBASE_POSTS_COLLECTION, types.FIREBASE_POSTS_FIELDS_VERIFICATION_ID, id)
	if err != nil {
		return nil, fmt.Errorf("store: query posts: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	var post firestorePost
	if err := doc.DataTo(&post); err != nil {
		return nil, fmt.Errorf("store: decode post %s: %w", doc.Ref.ID, err)
	}

	// A post whose creator document is gone cannot be shown either.
	userDoc, err := tools.GetFirestoreDocument(ctx, s.db, types.FIREBASE_USERS_COLLECTION, post.Creator)
	if err != nil {
		return nil, fmt.Errorf("store: get creator %s: %w", post.Creator, err)
	}
	if userDoc == nil {
		return nil, ErrNotFound
	}

	var user firestoreUser
	if err := userDoc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("store: decode creator %s: %w", post.Creator, err)
	}

	return post.toPost(doc.Ref.ID, user.toCreator(userDoc.Ref.ID)), nil
}

func (p firestorePost) toPost(id string, creator types.Creator) *types.Post {
	post := &types.Post{
		Id:             id,
		Creator:        creator,
		Signature:      p.Signature,
		VerificationId: p.VerificationId,
		Cid:            p.Cid,
		Timestamp:      p.Timestamp,
	}
	for _, r := range p.ReplyingTo {
		post.ReplyingTo = append(post.ReplyingTo, types.PostReplyTo{Address: r.Address, Cid: r.Cid})
	}
	return post
}

func (u firestoreUser) toCreator(id string) types.Creator {
	return types.Creator{
		Id:             id,
		Address:        u.Address,
		Username:       u.Username,
		Name:           u.Name,
		Bio:            u.Bio,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Website:        u.Website,
		Timestamp:      u.Timestamp,
	}
}
