package marketplace

// vehicle is one make/model the generators can advertise.
type vehicle struct {
	Make        string
	Model       string
	BasePrice   int
	Body        string
	Doors       int
	Engines     []string
	Trims       []string
	Fuels       []string
	Performance bool
}

var catalogue = []vehicle{
	{Make: "Ford", Model: "Fiesta", BasePrice: 19000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.0 EcoBoost", "1.1 Ti-VCT", "1.5 TDCi"}, Trims: []string{"Zetec", "Titanium", "ST-Line"},
		Fuels: []string{"Petrol", "Diesel"}},
	{Make: "Ford", Model: "Focus", BasePrice: 24000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.0 EcoBoost", "1.5 EcoBlue", "2.0 EcoBlue"}, Trims: []string{"Zetec", "Titanium", "ST-Line X"},
		Fuels: []string{"Petrol", "Diesel", "Hybrid"}},
	{Make: "Ford", Model: "Focus ST", BasePrice: 33000, Body: "Hatchback", Doors: 5,
		Engines: []string{"2.3 EcoBoost"}, Trims: []string{"ST-3", "Track Pack"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Vauxhall", Model: "Corsa", BasePrice: 18500, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.2", "1.2 Turbo", "1.5 Turbo D"}, Trims: []string{"SE", "SRi", "Elite Nav"},
		Fuels: []string{"Petrol", "Diesel", "Electric"}},
	{Make: "Volkswagen", Model: "Golf", BasePrice: 27000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.5 TSI", "2.0 TDI", "1.4 eHybrid"}, Trims: []string{"Life", "Style", "R-Line"},
		Fuels: []string{"Petrol", "Diesel", "Hybrid"}},
	{Make: "Volkswagen", Model: "Golf GTI", BasePrice: 38000, Body: "Hatchback", Doors: 5,
		Engines: []string{"2.0 TSI"}, Trims: []string{"Performance", "Clubsport"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Volkswagen", Model: "Polo", BasePrice: 20000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.0 TSI", "1.0 EVO"}, Trims: []string{"Life", "Match", "R-Line"},
		Fuels: []string{"Petrol"}},
	{Make: "BMW", Model: "3 Series", BasePrice: 38000, Body: "Saloon", Doors: 4,
		Engines: []string{"320d", "320i", "330e"}, Trims: []string{"SE", "Sport", "M Sport"},
		Fuels: []string{"Petrol", "Diesel", "Hybrid"}},
	{Make: "BMW", Model: "M3", BasePrice: 78000, Body: "Saloon", Doors: 4,
		Engines: []string{"3.0 Competition"}, Trims: []string{"Competition", "xDrive"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "BMW", Model: "M4", BasePrice: 82000, Body: "Coupe", Doors: 2,
		Engines: []string{"3.0 Competition"}, Trims: []string{"Competition", "CSL"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Audi", Model: "A3", BasePrice: 29000, Body: "Sportback", Doors: 5,
		Engines: []string{"30 TFSI", "35 TDI", "40 TFSI e"}, Trims: []string{"Sport", "S Line", "Black Edition"},
		Fuels: []string{"Petrol", "Diesel", "Hybrid"}},
	{Make: "Audi", Model: "RS3", BasePrice: 57000, Body: "Sportback", Doors: 5,
		Engines: []string{"2.5 TFSI"}, Trims: []string{"Launch Edition", "Vorsprung"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Mercedes-Benz", Model: "A-Class", BasePrice: 31000, Body: "Hatchback", Doors: 5,
		Engines: []string{"A180", "A200", "A250e"}, Trims: []string{"Sport", "AMG Line", "Premium Plus"},
		Fuels: []string{"Petrol", "Diesel", "Hybrid"}},
	{Make: "Mercedes-Benz", Model: "C63 AMG", BasePrice: 85000, Body: "Saloon", Doors: 4,
		Engines: []string{"4.0 V8 Biturbo", "2.0 E Performance"}, Trims: []string{"S", "Edition 1"},
		Fuels: []string{"Petrol", "Hybrid"}, Performance: true},
	{Make: "Toyota", Model: "Yaris", BasePrice: 21000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.5 Hybrid", "1.0 VVT-i"}, Trims: []string{"Icon", "Design", "Excel"},
		Fuels: []string{"Hybrid", "Petrol"}},
	{Make: "Toyota", Model: "Corolla", BasePrice: 28000, Body: "Hatchback", Doors: 5,
		Engines: []string{"1.8 Hybrid", "2.0 Hybrid"}, Trims: []string{"Icon", "Design", "GR Sport"},
		Fuels: []string{"Hybrid"}},
	{Make: "Honda", Model: "Civic Type R", BasePrice: 47000, Body: "Hatchback", Doors: 5,
		Engines: []string{"2.0 VTEC Turbo"}, Trims: []string{"GT", "Limited Edition"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Nissan", Model: "Qashqai", BasePrice: 29000, Body: "SUV", Doors: 5,
		Engines: []string{"1.3 DIG-T", "1.5 e-Power"}, Trims: []string{"Acenta Premium", "N-Connecta", "Tekna"},
		Fuels: []string{"Petrol", "Hybrid"}},
	{Make: "Kia", Model: "Sportage", BasePrice: 31000, Body: "SUV", Doors: 5,
		Engines: []string{"1.6 T-GDi", "1.6 HEV", "1.6 CRDi"}, Trims: []string{"2", "3", "GT-Line"},
		Fuels: []string{"Petrol", "Hybrid", "Diesel"}},
	{Make: "Tesla", Model: "Model 3", BasePrice: 42000, Body: "Saloon", Doors: 4,
		Engines: []string{"RWD", "Long Range AWD", "Performance"}, Trims: []string{"Standard", "Long Range"},
		Fuels: []string{"Electric"}},
	{Make: "Porsche", Model: "911", BasePrice: 105000, Body: "Coupe", Doors: 2,
		Engines: []string{"3.0 Carrera", "3.0 Carrera S", "3.8 Turbo S"}, Trims: []string{"PDK", "Targa"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "Mazda", Model: "MX-5", BasePrice: 28000, Body: "Convertible", Doors: 2,
		Engines: []string{"1.5 Skyactiv-G", "2.0 Skyactiv-G"}, Trims: []string{"SE-L", "Sport", "Homura"},
		Fuels: []string{"Petrol"}, Performance: true},
	{Make: "SEAT", Model: "Leon Cupra", BasePrice: 36000, Body: "Hatchback", Doors: 5,
		Engines: []string{"2.0 TSI 300"}, Trims: []string{"VZ2", "VZ3"},
		Fuels: []string{"Petrol"}, Performance: true},
}

var featurePool = []string{
	"Bluetooth", "Sat Nav", "Heated Seats", "Parking Sensors", "Reversing Camera",
	"Apple CarPlay", "Android Auto", "Cruise Control", "Adaptive Cruise Control",
	"Climate Control", "Alloy Wheels", "LED Headlights", "Keyless Entry",
	"Leather Seats", "Panoramic Roof", "DAB Radio", "Lane Assist", "Full Service History",
}

var performanceFeatures = []string{
	"Sports Exhaust", "Launch Control", "Limited Slip Differential", "Sports Seats",
	"Adaptive Suspension", "Carbon Trim", "Uprated Brakes",
}

var towns = []string{
	"London", "Manchester", "Birmingham", "Leeds", "Bristol", "Glasgow", "Edinburgh",
	"Cardiff", "Liverpool", "Nottingham", "Sheffield", "Southampton", "Norwich", "Exeter",
}

var transmissions = []string{"Manual", "Automatic"}
