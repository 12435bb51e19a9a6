package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/AnshJain2033/Backend-Ecommerce-App/sender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const testTemplate = "../templates/order_confirmation.html"

type fakeUserStore struct {
	user *models.User
	err  error
}

func (f *fakeUserStore) FindByID(_ context.Context, _ primitive.ObjectID) (*models.User, error) {
	return f.user, f.err
}

type fakeSender struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeSender) SendEmail(_ context.Context, to, subject, body string) (sender.SendResult, error) {
	f.to = to
	f.subject = subject
	f.body = body
	if f.err != nil {
		return sender.SendResult{}, f.err
	}
	return sender.SendResult{MessageID: "msg-1"}, nil
}

func confirmationFixture() (*models.Order, []models.Product, *models.User) {
	productID := primitive.NewObjectID()
	order := &models.Order{
		ID:       primitive.NewObjectID(),
		Products: []models.LineItem{{ProductID: productID, Price: 49.99}},
		Payment: models.PaymentResult{
			Success:       true,
			TransactionID: "txn_9",
			Status:        "settled",
			Amount:        49.99,
		},
	}
	products := []models.Product{{ID: productID, Name: "Winter Coat", Price: 49.99}}
	user := &models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	return order, products, user
}

func TestSendOrderConfirmation(t *testing.T) {
	order, products, user := confirmationFixture()
	mail := &fakeSender{}
	svc, err := NewNotificationService(
		&fakeOrderStore{order: order},
		&fakeUserStore{user: user},
		&fakeProductStore{byIDs: products},
		mail,
		testTemplate,
	)
	require.NoError(t, err)

	err = svc.SendOrderConfirmation(context.Background(), order.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", mail.to)
	assert.Contains(t, mail.subject, order.ID.Hex())
	assert.Contains(t, mail.body, "Ada")
	assert.Contains(t, mail.body, "Winter Coat")
	assert.Contains(t, mail.body, "49.99")
}

func TestSendOrderConfirmationBuyerNotFound(t *testing.T) {
	order, products, _ := confirmationFixture()
	svc, err := NewNotificationService(
		&fakeOrderStore{order: order},
		&fakeUserStore{err: mongo.ErrNoDocuments},
		&fakeProductStore{byIDs: products},
		&fakeSender{},
		testTemplate,
	)
	require.NoError(t, err)

	err = svc.SendOrderConfirmation(context.Background(), order.ID, primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSendOrderConfirmationNoEmail(t *testing.T) {
	order, products, user := confirmationFixture()
	user.Email = ""
	mail := &fakeSender{}
	svc, err := NewNotificationService(
		&fakeOrderStore{order: order},
		&fakeUserStore{user: user},
		&fakeProductStore{byIDs: products},
		mail,
		testTemplate,
	)
	require.NoError(t, err)

	err = svc.SendOrderConfirmation(context.Background(), order.ID, user.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, mail.to)
}

func TestSendOrderConfirmationOrderNotFound(t *testing.T) {
	_, products, user := confirmationFixture()
	svc, err := NewNotificationService(
		&fakeOrderStore{findErr: mongo.ErrNoDocuments},
		&fakeUserStore{user: user},
		&fakeProductStore{byIDs: products},
		&fakeSender{},
		testTemplate,
	)
	require.NoError(t, err)

	err = svc.SendOrderConfirmation(context.Background(), primitive.NewObjectID(), user.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSendOrderConfirmationSenderFailure(t *testing.T) {
	order, products, user := confirmationFixture()
	svc, err := NewNotificationService(
		&fakeOrderStore{order: order},
		&fakeUserStore{user: user},
		&fakeProductStore{byIDs: products},
		&fakeSender{err: errors.New("smtp: 451 try again later")},
		testTemplate,
	)
	require.NoError(t, err)

	err = svc.SendOrderConfirmation(context.Background(), order.ID, user.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTransport))
}

func TestNewNotificationServiceBadTemplate(t *testing.T) {
	_, err := NewNotificationService(
		&fakeOrderStore{},
		&fakeUserStore{},
		&fakeProductStore{},
		&fakeSender{},
		"no/such/template.html",
	)
	assert.Error(t, err)
}
