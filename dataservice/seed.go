package dataservice

import (
	"time"

	"needwise/models"
)

// Recycling rates per material (points per kg)
func seedRates() map[models.Material]int {
	return map[models.Material]int{
		models.MaterialPlastic:     10,
		models.MaterialPaper:       5,
		models.MaterialGlass:       8,
		models.MaterialMetal:       15,
		models.MaterialElectronics: 25,
	}
}

func seedRewards() []models.Reward {
	return []models.Reward{
		{RewardID: "r1", Name: "Metro/Bus Pass", Description: "A 1-day pass for Delhi Metro or local bus transportation.", PointsCost: 100, Sustainability: 4.5, Value: "₹60"},
		{RewardID: "r2", Name: "Eco-friendly Product Discount", Description: "15% off your next purchase of sustainable products.", PointsCost: 150, Sustainability: 4.2, Value: "₹300 savings"},
		{RewardID: "r3", Name: "Tree Planting Donation", Description: "We'll plant a tree on your behalf in partnership with local NGOs.", PointsCost: 200, Sustainability: 5.0, Value: "1 Tree"},
		{RewardID: "r4", Name: "Reusable Grocery Kit", Description: "A set of reusable grocery bags and produce mesh bags.", PointsCost: 300, Sustainability: 4.8, Value: "₹500 kit"},
		{RewardID: "r5", Name: "Solar Power Bank", Description: "Eco-friendly portable charger powered by solar energy.", PointsCost: 500, Sustainability: 4.6, Value: "₹1200 device"},
		{RewardID: "r6", Name: "Organic Food Voucher", Description: "Voucher for organic groceries at partner stores.", PointsCost: 400, Sustainability: 4.3, Value: "₹800 voucher"},
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ProductID: "1", Name: "Eco-Friendly Water Bottle", Price: 1999, Category: "Home",
			Description:    "Reusable stainless steel water bottle with bamboo cap. Keeps drinks cold for 24 hours or hot for 12 hours.",
			Sustainability: 4.5,
			Alternatives: []models.ProductAlternative{
				{ProductID: "1a", Name: "Glass Water Bottle", Price: 1599, Sustainability: 4.0, Comparison: "More affordable, 100% recyclable but less durable"},
				{ProductID: "1b", Name: "Bamboo Water Bottle", Price: 1849, Sustainability: 5.0, Comparison: "Higher sustainability rating, fully biodegradable"},
			},
		},
		{
			ProductID: "2", Name: "Smart LED Desk Lamp", Price: 4799, Category: "Electronics",
			Description:    "Energy-efficient LED desk lamp with adjustable brightness and color temperature.",
			Sustainability: 3.8,
			Alternatives: []models.ProductAlternative{
				{ProductID: "2a", Name: "Solar Powered Desk Lamp", Price: 5199, Sustainability: 4.7, Comparison: "More sustainable with renewable energy source"},
			},
		},
		{
			ProductID: "3", Name: "Organic Cotton T-Shirt", Price: 2399, Category: "Clothing",
			Description:    "Soft, breathable t-shirt made from 100% organic cotton. Fair trade certified.",
			Sustainability: 4.2,
			Alternatives: []models.ProductAlternative{
				{ProductID: "3a", Name: "Recycled Polyester T-Shirt", Price: 1999, Sustainability: 3.9, Comparison: "More affordable, uses recycled materials but less biodegradable"},
				{ProductID: "3b", Name: "Hemp Blend T-Shirt", Price: 2649, Sustainability: 4.8, Comparison: "Higher sustainability rating, more durable but slightly more expensive"},
			},
		},
		{
			ProductID: "4", Name: "Wireless Earbuds", Price: 7199, Category: "Electronics",
			Description:    "Bluetooth wireless earbuds with noise cancellation and 6-hour battery life.",
			Sustainability: 2.6,
			Alternatives: []models.ProductAlternative{
				{ProductID: "4a", Name: "Recyclable Wired Earphones", Price: 3199, Sustainability: 3.8, Comparison: "More sustainable, no battery waste, lower cost, longer lifespan"},
			},
		},
		{
			ProductID: "5", Name: "Bamboo Toothbrush Set", Price: 1049, Category: "Home",
			Description:    "Set of 4 biodegradable bamboo toothbrushes with charcoal-infused bristles.",
			Sustainability: 4.9,
			Alternatives: []models.ProductAlternative{
				{ProductID: "5a", Name: "Recycled Plastic Toothbrushes", Price: 799, Sustainability: 3.5, Comparison: "More affordable, but less biodegradable"},
			},
		},
		{
			ProductID: "6", Name: "Smart Watch", Price: 15999, Category: "Electronics",
			Description:    "Fitness and health tracking smart watch with heart rate monitor and sleep tracking.",
			Sustainability: 2.4,
			Alternatives: []models.ProductAlternative{
				{ProductID: "6a", Name: "Refurbished Smart Watch", Price: 10399, Sustainability: 3.7, Comparison: "More sustainable option through reuse, lower cost"},
			},
		},
		{
			ProductID: "7", Name: "Reusable Shopping Bags", Price: 1279, Category: "Home",
			Description:    "Set of 3 durable canvas shopping bags with reinforced handles.",
			Sustainability: 4.7,
			Alternatives: []models.ProductAlternative{
				{ProductID: "7a", Name: "Mesh Produce Bags", Price: 1039, Sustainability: 4.3, Comparison: "Lighter weight, perfect for fruits and vegetables"},
			},
		},
		{
			ProductID: "8", Name: "Solar Power Bank", Price: 3679, Category: "Electronics",
			Description:    "Portable solar-powered charger with 20,000mAh capacity and dual USB ports.",
			Sustainability: 4.1,
			Alternatives: []models.ProductAlternative{
				{ProductID: "8a", Name: "Hand Crank Power Bank", Price: 3199, Sustainability: 4.5, Comparison: "No solar dependency, works in any weather condition"},
			},
		},
	}
}

func seedUsers() []models.User {
	return []models.User{
		{
			UserID:    "u1",
			Name:      "Arjun Sharma",
			Email:     "arjun@needwise.com",
			EcoPoints: 250,
			JoinDate:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			ImpactStats: models.ImpactStats{
				CarbonSaved:  45.2,
				WasteReduced: 6.8,
				MoneySaved:   10280.50,
			},
			Preferences: models.Preferences{
				DefaultCooldownHours: 24,
				Notifications: models.NotificationPrefs{
					Email:             true,
					Push:              true,
					CooldownReminders: true,
				},
				SustainabilityGoals: models.SustainabilityGoals{
					Monthly: models.MonthlyGoals{Recycling: 10, SustainablePurchases: 5},
				},
			},
		},
	}
}

func seedCommunityImpact() models.CommunityImpact {
	return models.CommunityImpact{
		TotalRecycled: map[models.Material]float64{
			models.MaterialPlastic:     1250,
			models.MaterialPaper:       980,
			models.MaterialGlass:       760,
			models.MaterialMetal:       540,
			models.MaterialElectronics: 320,
		},
		TreesEquivalent: 124,
		CO2Saved:        15800,
		TopCommunities: []models.CommunityScore{
			{Name: "Koramangala Residents", Points: 12500},
			{Name: "HSR Layout Community", Points: 10800},
			{Name: "Indiranagar Green Group", Points: 9200},
		},
	}
}
