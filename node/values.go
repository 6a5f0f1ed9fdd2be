/*
Copyright 2023 eatmoreapple

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package node

import (
	"strings"

	"github.com/dynasql/dynasql/driver"
	"github.com/dynasql/dynasql/eval"
)

// valueItem is an element of ValuesNode.
type valueItem struct {
	column string
	value  string
}

// ValuesNode renders the column list and VALUES tuple of an insert
// xmlSQLStatement from its <values><value column="..." .../></values>
// children. Only meaningful for Insert statements.
type ValuesNode []*valueItem

// NewValueItem builds a valueItem, defaulting value to "#{column}" when
// the XML leaves it unset.
func NewValueItem(column, value string) *valueItem {
	if value == "" {
		value = "#{" + column + "}"
	}
	return &valueItem{column: column, value: value}
}

// Accept accepts parameters and returns query and arguments.
func (v ValuesNode) Accept(translator driver.Translator, param eval.Parameter) (query string, args []eval.ParameterRef, err error) {
	if len(v) == 0 {
		return "", nil, nil
	}
	builder := getStringBuilder()
	defer putStringBuilder(builder)
	builder.WriteString("(")
	builder.WriteString(v.columns())
	builder.WriteString(") VALUES (")
	builder.WriteString(v.values())
	builder.WriteString(")")
	return NewTextNode(builder.String()).Accept(translator, param)
}

// columns returns the comma-joined column names.
func (v ValuesNode) columns() string {
	columns := make([]string, 0, len(v))
	for _, item := range v {
		columns = append(columns, item.column)
	}
	return strings.Join(columns, ", ")
}

// values returns the comma-joined value expressions.
func (v ValuesNode) values() string {
	values := make([]string, 0, len(v))
	for _, item := range v {
		values = append(values, item.value)
	}
	return strings.Join(values, ", ")
}

var _ Node = (ValuesNode)(nil)

// selectFieldAliasItem is an element of SelectFieldAliasNode.
type selectFieldAliasItem struct {
	column string
	alias  string
}

// NewSelectFieldAliasItem builds a selectFieldAliasItem.
func NewSelectFieldAliasItem(column, alias string) *selectFieldAliasItem {
	return &selectFieldAliasItem{column: column, alias: alias}
}

// SelectFieldAliasNode renders the projected column list of a select
// xmlSQLStatement from its <alias><field name="..." alias="..."/></alias>
// children. It never binds arguments.
type SelectFieldAliasNode []*selectFieldAliasItem

// Accept accepts parameters and returns query and arguments.
func (s SelectFieldAliasNode) Accept(_ driver.Translator, _ eval.Parameter) (query string, args []eval.ParameterRef, err error) {
	if len(s) == 0 {
		return "", nil, nil
	}
	fields := make([]string, 0, len(s))
	for _, item := range s {
		field := item.column
		if item.alias != "" && item.alias != item.column {
			field = field + " AS " + item.alias
		}
		fields = append(fields, field)
	}
	return strings.Join(fields, ", "), nil, nil
}

var _ Node = (SelectFieldAliasNode)(nil)
