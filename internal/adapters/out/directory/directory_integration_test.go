package directory_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"restaurant/internal/adapters/out/directory"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
CREATE TABLE products (
	id uuid PRIMARY KEY,
	title text NOT NULL,
	list_price numeric(12,2),
	promotional_price numeric(12,2)
);
CREATE TABLE customers (
	id uuid PRIMARY KEY,
	name text NOT NULL,
	phone text NOT NULL
);
CREATE TABLE customer_addresses (
	customer_id uuid NOT NULL REFERENCES customers(id),
	position int NOT NULL,
	street text NOT NULL,
	number text NOT NULL,
	district text NOT NULL,
	city text NOT NULL,
	postal_code text,
	complement text,
	PRIMARY KEY (customer_id, position)
);`

type DirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *sql.DB
	directory *directory.SQLDirectory
}

func (suite *DirectoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := directory.Open(ctx, dsn)
	suite.Require().NoError(err)
	suite.db = db

	_, err = db.ExecContext(ctx, schema)
	suite.Require().NoError(err)

	suite.directory = directory.NewSQLDirectory(db)
}

func (suite *DirectoryIntegrationTestSuite) SetupTest() {
	_, err := suite.db.Exec("TRUNCATE TABLE customer_addresses, customers, products")
	suite.Require().NoError(err)
}

func (suite *DirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = suite.db.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DirectoryIntegrationTestSuite) TestGetProduct_PricesAreOptional() {
	ctx := context.Background()

	// Given
	regular, promoted, unpriced := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	suite.exec(`INSERT INTO products (id, title, list_price, promotional_price) VALUES
		($1, 'Coxinha', 6.50, NULL),
		($2, 'Pastel', 9.00, 7.50),
		($3, 'Brinde', NULL, NULL)`,
		regular.String(), promoted.String(), unpriced.String())

	// When
	coxinha, err := suite.directory.GetProduct(ctx, regular)

	// Then
	suite.Require().NoError(err)
	suite.Equal("Coxinha", coxinha.Title)
	suite.Require().NotNil(coxinha.ListPrice)
	suite.Equal("6.50", coxinha.ListPrice.String())
	suite.Nil(coxinha.PromotionalPrice)

	pastel, err := suite.directory.GetProduct(ctx, promoted)
	suite.Require().NoError(err)
	price, err := pastel.UnitPrice()
	suite.Require().NoError(err)
	suite.Equal("7.50", price.String())

	brinde, err := suite.directory.GetProduct(ctx, unpriced)
	suite.Require().NoError(err)
	_, err = brinde.UnitPrice()
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *DirectoryIntegrationTestSuite) TestGetProduct_Unknown_ReturnsNotFound() {
	_, err := suite.directory.GetProduct(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DirectoryIntegrationTestSuite) TestGetCustomer_ReturnsAddressBookInOrder() {
	ctx := context.Background()

	// Given
	id := kernel.NewUUID()
	suite.exec(`INSERT INTO customers (id, name, phone) VALUES ($1, 'Maria Souza', '(41) 99876-1234')`, id.String())
	suite.exec(`INSERT INTO customer_addresses
		(customer_id, position, street, number, district, city, postal_code, complement) VALUES
		($1, 2, 'Rua XV de Novembro', '700', 'Centro', 'Curitiba', NULL, NULL),
		($1, 1, 'Rua Chile', '12', 'Rebouças', 'Curitiba', '80220-180', 'casa 2')`,
		id.String())

	// When
	customer, err := suite.directory.GetCustomer(ctx, id)

	// Then
	suite.Require().NoError(err)
	suite.Equal(id, customer.ID)
	suite.Equal("Maria Souza", customer.Name)
	suite.Equal("41998761234", customer.Phone.Digits())
	suite.Require().Len(customer.Addresses, 2)
	suite.Equal("Rua Chile", customer.Addresses[0].Street())
	suite.Equal("casa 2", customer.Addresses[0].Complement())
	suite.Equal("Rua XV de Novembro", customer.Addresses[1].Street())
	suite.Empty(customer.Addresses[1].PostalCode())
}

func (suite *DirectoryIntegrationTestSuite) TestGetCustomer_Unknown_ReturnsNotFound() {
	_, err := suite.directory.GetCustomer(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DirectoryIntegrationTestSuite) TestClosedConnection_ReturnsUpstreamUnavailable() {
	ctx := context.Background()
	dsn, err := suite.container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	db, err := directory.Open(ctx, dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(db.Close())

	closed := directory.NewSQLDirectory(db)
	_, productErr := closed.GetProduct(ctx, kernel.NewUUID())
	_, customerErr := closed.GetCustomer(ctx, kernel.NewUUID())

	suite.ErrorIs(productErr, errs.ErrUpstreamUnavailable)
	suite.ErrorIs(customerErr, errs.ErrUpstreamUnavailable)
	suite.NotErrorIs(productErr, errs.ErrObjectNotFound)
}

func (suite *DirectoryIntegrationTestSuite) exec(query string, args ...any) {
	_, err := suite.db.Exec(query, args...)
	suite.Require().NoError(err)
}

func TestDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryIntegrationTestSuite))
}
