package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Montos en MongoDB se guardan como Decimal128; en el dominio como
// shopspring/decimal. La conversión pasa por la representación en string, que
// ambas librerías aceptan sin pérdida.

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convertir a Decimal128: %w", err)
	}
	return d128, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("convertir desde Decimal128: %w", err)
	}
	return out, nil
}
