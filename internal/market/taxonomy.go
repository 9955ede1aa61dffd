package market

import (
	"github.com/carson-networks/resell-server/internal/storage"
)

var subCategoryParents = map[storage.SubCategory]storage.Category{
	storage.SubCategoryTShirts:  storage.CategoryTops,
	storage.SubCategoryShirts:   storage.CategoryTops,
	storage.SubCategorySweaters: storage.CategoryTops,
	storage.SubCategoryTrousers: storage.CategoryBottoms,
	storage.SubCategoryJeans:    storage.CategoryBottoms,
	storage.SubCategoryShorts:   storage.CategoryBottoms,
	storage.SubCategorySkirts:   storage.CategoryBottoms,
	storage.SubCategoryJackets:  storage.CategoryOuterwear,
	storage.SubCategoryCoats:    storage.CategoryOuterwear,
	storage.SubCategorySneakers: storage.CategoryFootwear,
	storage.SubCategoryBoots:    storage.CategoryFootwear,
	storage.SubCategoryBags:     storage.CategoryAccessories,
	storage.SubCategoryHats:     storage.CategoryAccessories,
}

var categories = map[storage.Category]struct{}{
	storage.CategoryTops:        {},
	storage.CategoryBottoms:     {},
	storage.CategoryOuterwear:   {},
	storage.CategoryFootwear:    {},
	storage.CategoryAccessories: {},
}

var conditions = map[storage.Condition]struct{}{
	storage.ConditionNew:     {},
	storage.ConditionLikeNew: {},
	storage.ConditionGood:    {},
	storage.ConditionFair:    {},
	storage.ConditionPoor:    {},
	storage.ConditionUsed:    {},
}

func ValidCategory(c storage.Category) bool {
	_, ok := categories[c]
	return ok
}

func ValidCondition(c storage.Condition) bool {
	_, ok := conditions[c]
	return ok
}

// ParentCategory returns the category a subcategory belongs to.
func ParentCategory(sub storage.SubCategory) (storage.Category, bool) {
	parent, ok := subCategoryParents[sub]
	return parent, ok
}
