package domain

import "time"

// ServiceItem is one bookable service
type ServiceItem struct {
	Key  string `toml:"key"`
	Name string `toml:"name"`
}

// Catalog holds the menus offered during the conversation
type Catalog struct {
	Services    []ServiceItem
	CarMakes    []string
	YearsShown  int
	MakesPerRow int
	YearsPerRow int
}

// DefaultCatalog returns the shop's standard menus
func DefaultCatalog() Catalog {
	return Catalog{
		Services: []ServiceItem{
			{Key: "service_1", Name: "🔧 Капитальный ремонт"},
			{Key: "service_2", Name: "🛢 Замена масла"},
			{Key: "service_3", Name: "💻 Компьютерная диагностика"},
			{Key: "service_4", Name: "🔩 Шиномонтаж"},
			{Key: "service_5", Name: "⚙️ Проточка дисков"},
			{Key: "service_6", Name: "🔇 Ремонт глушителя"},
			{Key: "service_7", Name: "🎨 Покраска деталей"},
		},
		CarMakes:    []string{"Toyota", "Hyundai", "Kia", "Lada", "Nissan", "BMW"},
		YearsShown:  DefaultYearsShown,
		MakesPerRow: 3,
		YearsPerRow: 3,
	}
}

// ServiceName returns the display name for a service key
func (c Catalog) ServiceName(key string) (string, bool) {
	for _, s := range c.Services {
		if s.Key == key {
			return s.Name, true
		}
	}
	return "", false
}

// HasMake returns true if carMake is one of the menu items
func (c Catalog) HasMake(carMake string) bool {
	for _, m := range c.CarMakes {
		if m == carMake {
			return true
		}
	}
	return false
}

// RecentYears returns the year menu, newest first
func (c Catalog) RecentYears(now time.Time) []int {
	n := c.YearsShown
	if n <= 0 {
		n = DefaultYearsShown
	}
	years := make([]int, 0, n)
	for y := now.Year(); len(years) < n && y >= MinCarYear; y-- {
		years = append(years, y)
	}
	return years
}
