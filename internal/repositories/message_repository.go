package repositories

import (
	"context"
	"time"

	"github.com/capasdev/redsocial/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MensajeRepository defines the interface for message data operations
type MensajeRepository interface {
	CreateMensaje(ctx context.Context, mensaje *models.Mensaje) error
	GetMensajesByAutor(ctx context.Context, username string) ([]models.Mensaje, error)
}

// MongoMensajeRepository implements MensajeRepository for MongoDB
type MongoMensajeRepository struct {
	collection *mongo.Collection
}

// NewMongoMensajeRepository creates a new MongoMensajeRepository
func NewMongoMensajeRepository(db *mongo.Database) *MongoMensajeRepository {
	return &MongoMensajeRepository{collection: db.Collection("mensajes")}
}

// CreateMensaje creates a new message in MongoDB
func (r *MongoMensajeRepository) CreateMensaje(ctx context.Context, mensaje *models.Mensaje) error {
	mensaje.ID = primitive.NewObjectID()
	mensaje.FechaCreacion = time.Now()
	_, err := r.collection.InsertOne(ctx, mensaje)
	return err
}

// GetMensajesByAutor retrieves all messages of one author, newest first.
func (r *MongoMensajeRepository) GetMensajesByAutor(ctx context.Context, username string) ([]models.Mensaje, error) {
	mensajes := []models.Mensaje{}
	findOptions := options.Find().SetSort(bson.D{{Key: "fecha_creacion", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"username_autor": username}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &mensajes); err != nil {
		return nil, err
	}
	return mensajes, nil
}
