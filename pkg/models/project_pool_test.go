package models_test

import (
	"github.com/propnest/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestProjectPoolSelf() {
	assert.Equal(suite.T(), "Project Pool", models.ProjectPool{}.Self())
}

func (suite *TestSuiteStandard) TestNormalizeCurrency() {
	tests := []struct {
		in  string
		out string
		err error
	}{
		{"", models.DefaultCurrency, nil},
		{"EUR", "EUR", nil},
		{" USD ", "USD", nil},
		{"XYZW", "", models.ErrCurrencyInvalid},
		{"ZZZ", "", models.ErrCurrencyInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.in, func() {
			out, err := models.NormalizeCurrency(tt.in)
			assert.Equal(suite.T(), tt.err, err)
			assert.Equal(suite.T(), tt.out, out)
		})
	}
}

func (suite *TestSuiteStandard) TestProjectPoolBeforeSave() {
	p := models.ProjectPool{ProjectID: "  "}
	assert.Equal(suite.T(), models.ErrProjectIDEmpty, p.BeforeSave(&gorm.DB{}))

	p = models.ProjectPool{ProjectID: " P1 "}
	suite.Require().Nil(p.BeforeSave(&gorm.DB{}))
	assert.Equal(suite.T(), "P1", p.ProjectID)
	assert.Equal(suite.T(), models.DefaultCurrency, p.Currency)
}
