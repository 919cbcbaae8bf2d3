package baseline

import "github.com/pantrywise/consumption-service/internal/model"

// Defaults returns the built-in reference table: average consumption
// durations for common grocery items in a typical household. Used to seed
// the database and as a fallback when the baseline table is empty.
func Defaults() map[string]Entry {
	return map[string]Entry{
		// Dairy
		"milk":       {AvgDays: 1, Category: "dairy"},
		"yogurt":     {AvgDays: 1, Category: "dairy"},
		"cheese":     {AvgDays: 1, Category: "dairy"},
		"butter":     {AvgDays: 1, Category: "dairy"},
		"cream":      {AvgDays: 1, Category: "dairy"},
		"sour cream": {AvgDays: 1, Category: "dairy"},

		// Proteins
		"eggs":    {AvgDays: 14, Category: "protein"},
		"chicken": {AvgDays: 3, Category: "protein"},
		"beef":    {AvgDays: 1, Category: "protein"},
		"pork":    {AvgDays: 1, Category: "protein"},
		"fish":    {AvgDays: 1, Category: "protein"},
		"salmon":  {AvgDays: 1, Category: "protein"},
		"shrimp":  {AvgDays: 2, Category: "protein"},
		"bacon":   {AvgDays: 10, Category: "protein"},
		"sausage": {AvgDays: 7, Category: "protein"},
		"ham":     {AvgDays: 7, Category: "protein"},
		"turkey":  {AvgDays: 3, Category: "protein"},

		// Bread & bakery
		"bread":     {AvgDays: 5, Category: "bakery"},
		"bagels":    {AvgDays: 7, Category: "bakery"},
		"tortillas": {AvgDays: 10, Category: "bakery"},
		"pita":      {AvgDays: 7, Category: "bakery"},
		"croissant": {AvgDays: 3, Category: "bakery"},
		"muffins":   {AvgDays: 5, Category: "bakery"},

		// Fruits
		"apple":      {AvgDays: 10, Category: "fruit"},
		"banana":     {AvgDays: 5, Category: "fruit"},
		"orange":     {AvgDays: 10, Category: "fruit"},
		"grape":      {AvgDays: 7, Category: "fruit"},
		"strawberry": {AvgDays: 5, Category: "fruit"},
		"blueberry":  {AvgDays: 7, Category: "fruit"},
		"watermelon": {AvgDays: 7, Category: "fruit"},
		"pineapple":  {AvgDays: 5, Category: "fruit"},
		"mango":      {AvgDays: 5, Category: "fruit"},
		"peach":      {AvgDays: 5, Category: "fruit"},
		"pear":       {AvgDays: 7, Category: "fruit"},
		"lemon":      {AvgDays: 14, Category: "fruit"},
		"lime":       {AvgDays: 14, Category: "fruit"},
		"avocado":    {AvgDays: 5, Category: "fruit"},

		// Vegetables
		"tomato":      {AvgDays: 7, Category: "vegetable"},
		"potato":      {AvgDays: 21, Category: "vegetable"},
		"onion":       {AvgDays: 21, Category: "vegetable"},
		"garlic":      {AvgDays: 30, Category: "vegetable"},
		"carrot":      {AvgDays: 14, Category: "vegetable"},
		"broccoli":    {AvgDays: 7, Category: "vegetable"},
		"cauliflower": {AvgDays: 7, Category: "vegetable"},
		"lettuce":     {AvgDays: 5, Category: "vegetable"},
		"spinach":     {AvgDays: 5, Category: "vegetable"},
		"cucumber":    {AvgDays: 7, Category: "vegetable"},
		"bell pepper": {AvgDays: 7, Category: "vegetable"},
		"zucchini":    {AvgDays: 7, Category: "vegetable"},
		"mushroom":    {AvgDays: 7, Category: "vegetable"},
		"corn":        {AvgDays: 5, Category: "vegetable"},
		"green beans": {AvgDays: 7, Category: "vegetable"},
		"celery":      {AvgDays: 10, Category: "vegetable"},
		"cabbage":     {AvgDays: 14, Category: "vegetable"},

		// Condiments & sauces
		"ketchup":        {AvgDays: 90, Category: "condiment"},
		"mustard":        {AvgDays: 90, Category: "condiment"},
		"mayonnaise":     {AvgDays: 60, Category: "condiment"},
		"soy sauce":      {AvgDays: 180, Category: "condiment"},
		"hot sauce":      {AvgDays: 90, Category: "condiment"},
		"salsa":          {AvgDays: 14, Category: "condiment"},
		"bbq sauce":      {AvgDays: 60, Category: "condiment"},
		"ranch dressing": {AvgDays: 30, Category: "condiment"},

		// Beverages
		"orange juice": {AvgDays: 7, Category: "beverage"},
		"apple juice":  {AvgDays: 7, Category: "beverage"},
		"soda":         {AvgDays: 30, Category: "beverage"},
		"beer":         {AvgDays: 60, Category: "beverage"},
		"wine":         {AvgDays: 30, Category: "beverage"},
		"water":        {AvgDays: 7, Category: "beverage"},
		"coffee":       {AvgDays: 30, Category: "beverage"},
		"tea":          {AvgDays: 60, Category: "beverage"},

		// Pantry staples
		"rice":            {AvgDays: 180, Category: "pantry"},
		"pasta":           {AvgDays: 180, Category: "pantry"},
		"flour":           {AvgDays: 90, Category: "pantry"},
		"sugar":           {AvgDays: 180, Category: "pantry"},
		"salt":            {AvgDays: 365, Category: "pantry"},
		"oil":             {AvgDays: 90, Category: "pantry"},
		"olive oil":       {AvgDays: 90, Category: "pantry"},
		"vegetable oil":   {AvgDays: 90, Category: "pantry"},
		"cereal":          {AvgDays: 30, Category: "pantry"},
		"oatmeal":         {AvgDays: 60, Category: "pantry"},
		"beans":           {AvgDays: 180, Category: "pantry"},
		"canned tomatoes": {AvgDays: 180, Category: "pantry"},
		"peanut butter":   {AvgDays: 60, Category: "pantry"},
		"jam":             {AvgDays: 60, Category: "pantry"},
		"honey":           {AvgDays: 365, Category: "pantry"},
		"nuts":            {AvgDays: 60, Category: "pantry"},

		// Frozen
		"frozen vegetables": {AvgDays: 90, Category: "frozen"},
		"frozen fruits":     {AvgDays: 90, Category: "frozen"},
		"ice cream":         {AvgDays: 30, Category: "frozen"},
		"frozen pizza":      {AvgDays: 60, Category: "frozen"},
		"frozen meals":      {AvgDays: 60, Category: "frozen"},

		// Snacks
		"chips":     {AvgDays: 14, Category: "snack"},
		"crackers":  {AvgDays: 30, Category: "snack"},
		"cookies":   {AvgDays: 21, Category: "snack"},
		"popcorn":   {AvgDays: 30, Category: "snack"},
		"chocolate": {AvgDays: 30, Category: "snack"},
		"candy":     {AvgDays: 60, Category: "snack"},
	}
}

// DefaultRows converts the built-in table to insertable rows for seeding.
func DefaultRows() []model.Baseline {
	defaults := Defaults()
	rows := make([]model.Baseline, 0, len(defaults))
	for name, entry := range defaults {
		rows = append(rows, model.Baseline{
			ItemName: name,
			AvgDays:  entry.AvgDays,
			Category: entry.Category,
		})
	}
	return rows
}
