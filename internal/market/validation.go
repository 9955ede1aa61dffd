package market

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/resell-server/internal/storage"
)

const (
	maxNameLength     = 200
	maxUsernameLength = 50
)

func checkText(v *ValidationError, field, value string, maxLength int) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, "must not be blank")
	case len(value) > maxLength:
		v.Add(field, "is too long")
	}
}

func checkPrice(v *ValidationError, price decimal.Decimal) {
	if !price.IsPositive() {
		v.Add("price", "must be greater than zero")
	}
}

func checkCondition(v *ValidationError, condition storage.Condition) {
	if !ValidCondition(condition) {
		v.Add("condition", "unknown condition "+string(condition))
	}
}

// ValidateListing checks a new listing, including that the subcategory
// belongs to the category.
func ValidateListing(create *storage.ItemCreate) error {
	v := &ValidationError{}
	checkText(v, "name", create.Name, maxNameLength)
	checkText(v, "brand", create.Brand, maxNameLength)
	checkText(v, "size", create.Size, maxNameLength)
	checkPrice(v, create.Price)
	checkCondition(v, create.Condition)

	if !ValidCategory(create.Category) {
		v.Add("category", "unknown category "+string(create.Category))
	}
	parent, ok := ParentCategory(create.SubCategory)
	switch {
	case !ok:
		v.Add("subCategory", "unknown subcategory "+string(create.SubCategory))
	case ValidCategory(create.Category) && parent != create.Category:
		v.Add("subCategory", string(create.SubCategory)+" does not belong to "+string(create.Category))
	}
	return v.OrNil()
}

// ValidateDetails checks the editable fields of an existing listing.
func ValidateDetails(details *storage.ItemDetails) error {
	v := &ValidationError{}
	checkText(v, "name", details.Name, maxNameLength)
	checkText(v, "brand", details.Brand, maxNameLength)
	checkText(v, "size", details.Size, maxNameLength)
	checkPrice(v, details.Price)
	checkCondition(v, details.Condition)
	return v.OrNil()
}

func ValidateUser(create *storage.UserCreate) error {
	v := &ValidationError{}
	checkText(v, "username", create.Username, maxUsernameLength)
	if strings.IndexFunc(create.Username, unicode.IsSpace) >= 0 {
		v.Add("username", "must not contain whitespace")
	}

	if strings.TrimSpace(create.Email) == "" {
		v.Add("email", "must not be blank")
	} else if addr, err := mail.ParseAddress(create.Email); err != nil || addr.Address != create.Email {
		v.Add("email", "is not a valid address")
	}
	return v.OrNil()
}
