package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/stepflow/service/dao"
)

func TestMatchName(t *testing.T) {
	testCases := []struct {
		description string
		name        string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", name: "orders", expect: true},
		{description: "exact name", name: "orders", parameters: []*dao.Parameter{dao.NewParameter(Name, "orders")}, expect: true},
		{description: "name mismatch", name: "orders", parameters: []*dao.Parameter{dao.NewParameter(Name, "billing")}},
		{description: "any of names", name: "orders", parameters: []*dao.Parameter{dao.NewParameter(Name, "billing", "orders")}, expect: true},
		{description: "prefix", name: "orders-eu", parameters: []*dao.Parameter{dao.NewParameter(Prefix, "orders")}, expect: true},
		{description: "prefix and name", name: "orders-eu", parameters: []*dao.Parameter{dao.NewParameter(Prefix, "orders"), dao.NewParameter(Name, "orders-us")}},
		{description: "unknown parameter", name: "orders", parameters: []*dao.Parameter{dao.NewParameter("State", "done")}, expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, MatchName(testCase.name, testCase.parameters), testCase.description)
	}
}
