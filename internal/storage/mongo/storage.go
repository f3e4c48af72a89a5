// Package mongo provides a MongoDB-backed player storage implementation.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/storage"
)

const (
	playersCollection  = "players"
	countersCollection = "counters"
	playerCounterID    = "player_id"
)

// Config holds MongoDB connection settings
type Config struct {
	URI      string
	Database string
}

// Storage persists players in a MongoDB collection. Integer IDs come from a
// counter document incremented atomically with FindOneAndUpdate.
type Storage struct {
	client   *mongo.Client
	players  *mongo.Collection
	counters *mongo.Collection
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New connects to MongoDB and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo database is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Storage{
		client:   client,
		players:  db.Collection(playersCollection),
		counters: db.Collection(countersCollection),
	}, nil
}

// Close disconnects the client
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// playerDocument is the stored BSON shape of a player
type playerDocument struct {
	ID             int64     `bson:"_id"`
	Name           string    `bson:"name"`
	Title          string    `bson:"title"`
	Race           string    `bson:"race"`
	Profession     string    `bson:"profession"`
	Birthday       time.Time `bson:"birthday"`
	Banned         bool      `bson:"banned"`
	Experience     int       `bson:"experience"`
	Level          int       `bson:"level"`
	UntilNextLevel int       `bson:"untilNextLevel"`
}

func toDocument(p *model.Player) playerDocument {
	return playerDocument{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.Birthday.UTC(),
		Banned:         p.Banned,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
	}
}

func (d playerDocument) toModel() *model.Player {
	return &model.Player{
		ID:             model.PlayerID(d.ID),
		Name:           d.Name,
		Title:          d.Title,
		Race:           model.Race(d.Race),
		Profession:     model.Profession(d.Profession),
		Birthday:       d.Birthday.UTC(),
		Banned:         d.Banned,
		Experience:     d.Experience,
		Level:          d.Level,
		UntilNextLevel: d.UntilNextLevel,
	}
}

func (s *Storage) nextID(ctx context.Context) (model.PlayerID, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": playerCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("assign player id: %w", err)
	}
	return model.PlayerID(counter.Seq), nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if player.ID == 0 {
		id, err := s.nextID(ctx)
		if err != nil {
			return err
		}
		player.ID = id
	}

	doc := toDocument(player)
	_, err := s.players.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save player %d: %w", player.ID, err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var doc playerDocument
	err := s.players.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return doc.toModel(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.players.DeleteOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	cursor, err := s.players.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []playerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}

	players := make([]*model.Player, len(docs))
	for i, d := range docs {
		players[i] = d.toModel()
	}
	return players, nil
}
