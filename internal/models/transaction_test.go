package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTransaction(c category.Category, amount int64, date time.Time) models.Transaction {
	transaction := models.Transaction{
		Amount:   decimal.NewFromInt(amount),
		Merchant: "Test Merchant",
		Category: c,
		Date:     date,
	}

	suite.Require().Nil(models.DB.Create(&transaction).Error)
	return transaction
}

func (suite *TestSuiteStandard) TestTransactionFindTimeUTC() {
	tz := time.FixedZone("IST", 5*60*60+30*60)

	transaction := models.Transaction{
		Date: time.Date(2025, 2, 24, 10, 4, 5, 6, tz),
	}

	err := transaction.AfterFind(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.AfterFind failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveDefaults() {
	transaction := models.Transaction{
		Amount:   decimal.NewFromInt(10),
		Merchant: "  Zomato ",
	}

	err := transaction.BeforeSave(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Equal("Zomato", transaction.Merchant)
	suite.Assert().Equal(types.PaymentModeUnknown, transaction.PaymentMode)
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
	suite.Assert().False(transaction.Date.IsZero())

	transaction = models.Transaction{Amount: decimal.NewFromInt(10)}
	suite.Require().Nil(transaction.BeforeSave(models.DB))
	suite.Assert().Equal("Unknown", transaction.Merchant)
}

func (suite *TestSuiteStandard) TestTransactionAmountMustBePositive() {
	transaction := models.Transaction{
		Amount:   decimal.NewFromInt(0),
		Merchant: "Zomato",
	}

	err := models.DB.Create(&transaction).Error
	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestTransactionImmutable() {
	transaction := suite.createTransaction(category.Food, 100, time.Now())

	err := models.DB.Model(&transaction).Update("merchant", "Other").Error
	suite.Assert().ErrorIs(err, models.ErrTransactionImmutable)
}

func (suite *TestSuiteStandard) TestTransactionsInMonth() {
	month := types.NewMonth(2025, 2)

	suite.createTransaction(category.Food, 100, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC))
	inside := suite.createTransaction(category.Food, 200, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	latest := suite.createTransaction(category.Transport, 300, time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC))
	suite.createTransaction(category.Food, 400, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	transactions, err := models.TransactionsInMonth(models.DB, month)
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 2)
	suite.Assert().Equal(latest.ID, transactions[0].ID)
	suite.Assert().Equal(inside.ID, transactions[1].ID)
}

func (suite *TestSuiteStandard) TestSpendInMonth() {
	month := types.NewMonth(2025, 2)

	suite.createTransaction(category.Food, 100, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC))
	suite.createTransaction(category.Food, 250, time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC))
	suite.createTransaction(category.Transport, 999, time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC))
	suite.createTransaction(category.Food, 1000, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))

	total, err := models.SpendInMonth(models.DB, category.Food, month)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(350).Equal(total), "expected 350, got %s", total)

	total, err = models.SpendInMonth(models.DB, category.Health, month)
	suite.Require().Nil(err)
	suite.Assert().True(total.IsZero())
}
