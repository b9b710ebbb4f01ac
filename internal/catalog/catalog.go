// Package catalog holds the static catalog of the thirty rights of the
// Universal Declaration of Human Rights. The catalog is read-only; every
// operation in the pipeline treats it as immutable reference data.
package catalog

import (
	"strings"

	"github.com/veridex/veridex/internal/model"
)

var rights = []model.Right{
	{ID: "1", Name: "Free and Equal in Dignity and Rights", Summary: "All human beings are born free and equal in dignity and rights.", Category: model.RightCivil},
	{ID: "2", Name: "Freedom from Discrimination", Summary: "Everyone is entitled to all rights and freedoms without distinction of any kind.", Category: model.RightCivil},
	{ID: "3", Name: "Right to Life, Liberty and Security", Summary: "Everyone has the right to life, liberty and security of person.", Category: model.RightCivil},
	{ID: "4", Name: "Freedom from Slavery", Summary: "No one shall be held in slavery or servitude.", Category: model.RightCivil},
	{ID: "5", Name: "Freedom from Torture", Summary: "No one shall be subjected to torture or to cruel, inhuman or degrading treatment.", Category: model.RightCivil},
	{ID: "6", Name: "Recognition as a Person before the Law", Summary: "Everyone has the right to recognition everywhere as a person before the law.", Category: model.RightCivil},
	{ID: "7", Name: "Equality before the Law", Summary: "All are equal before the law and entitled to equal protection without discrimination.", Category: model.RightCivil},
	{ID: "8", Name: "Right to an Effective Remedy", Summary: "Everyone has the right to an effective remedy for acts violating fundamental rights.", Category: model.RightCivil},
	{ID: "9", Name: "Freedom from Arbitrary Detention", Summary: "No one shall be subjected to arbitrary arrest, detention or exile.", Category: model.RightCivil},
	{ID: "10", Name: "Right to a Fair Trial", Summary: "Everyone is entitled to a fair and public hearing by an independent tribunal.", Category: model.RightCivil},
	{ID: "11", Name: "Presumption of Innocence", Summary: "Everyone charged with a penal offence has the right to be presumed innocent until proved guilty.", Category: model.RightCivil},
	{ID: "12", Name: "Right to Privacy", Summary: "No one shall be subjected to arbitrary interference with privacy, family, home or correspondence.", Category: model.RightCivil},
	{ID: "13", Name: "Freedom of Movement", Summary: "Everyone has the right to freedom of movement and residence within each state.", Category: model.RightCivil},
	{ID: "14", Name: "Right to Asylum", Summary: "Everyone has the right to seek and enjoy in other countries asylum from persecution.", Category: model.RightCivil},
	{ID: "15", Name: "Right to a Nationality", Summary: "Everyone has the right to a nationality.", Category: model.RightCivil},
	{ID: "16", Name: "Right to Marriage and Family", Summary: "Men and women of full age have the right to marry and to found a family.", Category: model.RightSocial},
	{ID: "17", Name: "Right to Own Property", Summary: "Everyone has the right to own property alone as well as in association with others.", Category: model.RightEconomic},
	{ID: "18", Name: "Freedom of Thought, Conscience and Religion", Summary: "Everyone has the right to freedom of thought, conscience and religion.", Category: model.RightCivil},
	{ID: "19", Name: "Freedom of Opinion and Expression", Summary: "Everyone has the right to freedom of opinion and expression through any media.", Category: model.RightCivil},
	{ID: "20", Name: "Freedom of Assembly and Association", Summary: "Everyone has the right to freedom of peaceful assembly and association.", Category: model.RightPolitical},
	{ID: "21", Name: "Right to Participate in Government", Summary: "Everyone has the right to take part in the government of their country.", Category: model.RightPolitical},
	{ID: "22", Name: "Right to Social Security", Summary: "Everyone, as a member of society, has the right to social security.", Category: model.RightSocial},
	{ID: "23", Name: "Right to Work", Summary: "Everyone has the right to work, to free choice of employment and to just conditions.", Category: model.RightEconomic},
	{ID: "24", Name: "Right to Rest and Leisure", Summary: "Everyone has the right to rest and leisure, including reasonable limitation of working hours.", Category: model.RightEconomic},
	{ID: "25", Name: "Right to an Adequate Standard of Living", Summary: "Everyone has the right to a standard of living adequate for health and well-being.", Category: model.RightSocial},
	{ID: "26", Name: "Right to Education", Summary: "Everyone has the right to education, free at least in the elementary stages.", Category: model.RightSocial},
	{ID: "27", Name: "Right to Participate in Cultural Life", Summary: "Everyone has the right freely to participate in the cultural life of the community.", Category: model.RightCultural},
	{ID: "28", Name: "Right to a Just Social and International Order", Summary: "Everyone is entitled to an order in which these rights can be fully realized.", Category: model.RightPolitical},
	{ID: "29", Name: "Duties to the Community", Summary: "Everyone has duties to the community; rights may be limited only by law for general welfare.", Category: model.RightSocial},
	{ID: "30", Name: "Freedom from State or Personal Interference", Summary: "Nothing in the declaration may be interpreted as a right to destroy the rights of others.", Category: model.RightCivil},
}

// All returns the full catalog in declaration order.
// The returned slice is a copy; the catalog itself is never mutated.
func All() []model.Right {
	out := make([]model.Right, len(rights))
	copy(out, rights)
	return out
}

// ByID looks up a right by its stable identifier
func ByID(id string) (model.Right, bool) {
	for _, r := range rights {
		if r.ID == id {
			return r, true
		}
	}
	return model.Right{}, false
}

// ByName looks up a right by display name, case-insensitively
func ByName(name string) (model.Right, bool) {
	for _, r := range rights {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return model.Right{}, false
}
