package store

import (
	"context"
	"fmt"
	"time"

	"socio_verify_api/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPost struct {
	Id             primitive.ObjectID `bson:"_id"`
	Creator        mongoUser          `bson:"creator"`
	Signature      string             `bson:"signature"`
	VerificationId string             `bson:"verificationId"`
	Cid            string             `bson:"cid"`
	Timestamp      time.Time          `bson:"timestamp"`
	ReplyingTo     []mongoPostReplyTo `bson:"replyingTo,omitempty"`
}

type mongoPostReplyTo struct {
	Address string `bson:"address"`
	Cid     string `bson:"cid"`
}

type mongoUser struct {
	Id             primitive.ObjectID `bson:"_id"`
	Address        string             `bson:"address"`
	Username       string             `bson:"username"`
	Name           string             `bson:"name,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	Email          string             `bson:"email,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Timestamp      time.Time          `bson:"timestamp"`
}

type MongoStore struct {
	posts *mongo.Collection
}

// ConnectMongo opens a client against uri. The returned func disconnects it.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("store: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("store: ping mongo: %w", err)
	}

	return NewMongoStore(client.Database(database)), client.Disconnect, nil
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{posts: db.Collection(types.MONGO_POSTS_COLLECTION)}
}

func (s *MongoStore) FindByVerificationId(ctx context.Context, id string) (*types.Post, error) {
	cursor, err := s.posts.Aggregate(ctx, verificationLookupPipeline(id))
	if err != nil {
		return nil, fmt.Errorf("store: aggregate posts: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("store: read posts: %w", err)
		}
		return nil, ErrNotFound
	}

	var post mongoPost
	if err := cursor.Decode(&post); err != nil {
		return nil, fmt.Errorf("store: decode post: %w", err)
	}
	return post.toPost(), nil
}

// verificationLookupPipeline matches one post and populates its creator.
// Posts whose creator is missing drop out at $unwind.
func verificationLookupPipeline(id string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "verificationId", Value: id}}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: types.MONGO_USERS_COLLECTION},
			{Key: "localField", Value: "creator"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "creator"},
		}}},
		{{Key: "$unwind", Value: "$creator"}},
	}
}

func (p mongoPost) toPost() *types.Post {
	post := &types.Post{
		Id: p.Id.Hex(),
		Creator: types.Creator{
			Id:             p.Creator.Id.Hex(),
			Address:        p.Creator.Address,
			Username:       p.Creator.Username,
			Name:           p.Creator.Name,
			Bio:            p.Creator.Bio,
			Email:          p.Creator.Email,
			ProfilePicture: p.Creator.ProfilePicture,
			Website:        p.Creator.Website,
			Timestamp:      p.Creator.Timestamp,
		},
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
