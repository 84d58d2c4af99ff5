package model_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"brewhouse/internal/domain/pricing"
	"brewhouse/internal/infra/persistence/model"
)

func TestMoneyColumnsKeepPricingScale(t *testing.T) {
	want := fmt.Sprintf("numeric(20,%d)", pricing.MoneyScale)
	decimalType := reflect.TypeOf(decimal.Decimal{})

	for _, dest := range []any{&model.OrderModel{}, &model.OrderLineModel{}} {
		s, err := schema.Parse(dest, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		checked := 0
		for _, field := range s.Fields {
			if field.FieldType != decimalType {
				continue
			}
			checked++
			assert.Equal(t, want, field.TagSettings["TYPE"], "%s.%s", s.Table, field.Name)
		}
		assert.Positive(t, checked, s.Table)
	}
}
