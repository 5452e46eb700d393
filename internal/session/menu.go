package session

import "artisanmart/internal/models"

// MenuItem is one entry of the dashboard navigation.
type MenuItem struct {
	Label string
	Href  string
	Roles []string
}

// DashboardMenu lists every dashboard entry with the roles allowed to see it.
var DashboardMenu = []MenuItem{
	{Label: "Dashboard", Href: "/dashboard", Roles: []string{models.RoleCustomer, models.RoleArtisan}},
	{Label: "Products", Href: "/dashboard/products", Roles: []string{models.RoleCustomer, models.RoleArtisan}},
	{Label: "Brand", Href: "/dashboard/brands", Roles: []string{models.RoleArtisan}},
	{Label: "Orders", Href: "/dashboard/orders", Roles: []string{models.RoleCustomer, models.RoleArtisan}},
	{Label: "Customers", Href: "/dashboard/customers", Roles: []string{models.RoleArtisan}},
	{Label: "Settings", Href: "/dashboard/settings", Roles: []string{models.RoleCustomer, models.RoleArtisan}},
	{Label: "Become an artisan", Href: "/become-artisan", Roles: []string{models.RoleCustomer}},
}

// GuestMenu is shown when nobody is logged in.
var GuestMenu = []MenuItem{
	{Label: "Home", Href: "/"},
	{Label: "Products", Href: "/products"},
	{Label: "Sign in", Href: "/account"},
}

// VisibleMenu returns the entries role may see. An empty role yields the
// guest menu; a role nothing is granted to yields an empty menu.
func VisibleMenu(role string) []MenuItem {
	if role == "" {
		return append([]MenuItem(nil), GuestMenu...)
	}

	items := make([]MenuItem, 0, len(DashboardMenu))
	for _, item := range DashboardMenu {
		for _, r := range item.Roles {
			if r == role {
				items = append(items, item)
				break
			}
		}
	}
	return items
}
