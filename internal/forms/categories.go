package forms

// ProductCategories is the closed set of categories a product may be listed under.
var ProductCategories = []string{
	"Pottery & Ceramics",
	"Textile & Weaving",
	"Woodworking",
	"Jewelry Making",
	"Leather Crafting",
	"Metal Working",
	"Basket Weaving",
	"Glass Art",
	"Traditional Paintings",
	"Embroidery",
	"Bamboo Crafts",
	"Clay Modeling",
	"Traditional Toys",
	"Folk Art",
	"Handmade Soaps",
}

// QuantityUnits are the units an order quantity can be expressed in.
var QuantityUnits = []string{"Piece", "Dozen", "Kg", "Gram", "Meter", "Set"}

// WeightUnits and DimensionUnits are the accepted physical measurement units.
var (
	WeightUnits    = []string{"kg", "g", "lb", "oz"}
	DimensionUnits = []string{"cm", "m", "in", "ft"}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
