package seed

import (
	"github.com/bbernstein/weatherhub/internal/forecast"
	"github.com/bbernstein/weatherhub/internal/models"
)

// Builtin returns the five canonical stations and their fixtures. Each call returns a fresh
// catalog, so callers may modify it freely.
func Builtin() *Catalog {
	return &Catalog{
		Stations:   builtinStations(),
		Conditions: builtinConditions(),
		Hourly:     builtinBaselines(),
		Daily:      builtinDaily(),
		Alerts:     builtinAlerts(),
		AirQuality: builtinAirQuality(),
	}
}

func builtinStations() []models.Station {
	return []models.Station{
		{ID: "den01", Name: "Denver International", Location: models.Location{Latitude: 39.8561, Longitude: -104.6737, ElevationFt: 5431, City: "Denver", State: "CO", Country: "US"}, Status: models.StationOnline},
		{ID: "mia01", Name: "Miami Beach Oceanside", Location: models.Location{Latitude: 25.7907, Longitude: -80.1300, ElevationFt: 7, City: "Miami", State: "FL", Country: "US"}, Status: models.StationOnline},
		{ID: "sea01", Name: "Seattle-Tacoma Metro", Location: models.Location{Latitude: 47.4502, Longitude: -122.3088, ElevationFt: 433, City: "Seattle", State: "WA", Country: "US"}, Status: models.StationOnline},
		{ID: "phx01", Name: "Phoenix Sky Harbor", Location: models.Location{Latitude: 33.4373, Longitude: -112.0078, ElevationFt: 1135, City: "Phoenix", State: "AZ", Country: "US"}, Status: models.StationOnline},
		{ID: "chi01", Name: "Chicago O'Hare", Location: models.Location{Latitude: 41.9742, Longitude: -87.9073, ElevationFt: 672, City: "Chicago", State: "IL", Country: "US"}, Status: models.StationMaintenance},
	}
}

// ObservedAt is left zero; the directory stamps it with the startup time.
func builtinConditions() map[string]models.CurrentConditions {
	return map[string]models.CurrentConditions{
		"den01": {
			TemperatureF: 42, FeelsLikeF: 36, HumidityPercent: 28, DewPointF: 12,
			PressureMb: 1024.5, VisibilityMiles: 10, UvIndex: 3,
			SkyCondition:  models.SkyPartlyCloudy,
			Wind:          wind(12.5, models.WindNW, gust(22)),
			Precipitation: precip(models.PrecipNone, 0, 5),
		},
		"mia01": {
			TemperatureF: 84, FeelsLikeF: 91, HumidityPercent: 78, DewPointF: 76,
			PressureMb: 1013.2, VisibilityMiles: 8, UvIndex: 9,
			SkyCondition:  models.SkyMostlyCloudy,
			Wind:          wind(8, models.WindSE, nil),
			Precipitation: precip(models.PrecipRain, 0.15, 60),
		},
		"sea01": {
			TemperatureF: 52, FeelsLikeF: 49, HumidityPercent: 88, DewPointF: 48,
			PressureMb: 1008.7, VisibilityMiles: 5, UvIndex: 1,
			SkyCondition:  models.SkyOvercast,
			Wind:          wind(6, models.WindS, gust(11)),
			Precipitation: precip(models.PrecipRain, 0.35, 85),
		},
		"phx01": {
			TemperatureF: 105, FeelsLikeF: 103, HumidityPercent: 8, DewPointF: 22,
			PressureMb: 1010, VisibilityMiles: 10, UvIndex: 11,
			SkyCondition:  models.SkyClear,
			Wind:          wind(4, models.WindWSW, nil),
			Precipitation: precip(models.PrecipNone, 0, 0),
		},
		"chi01": {
			TemperatureF: 18, FeelsLikeF: 2, HumidityPercent: 65, DewPointF: 7,
			PressureMb: 1030.1, VisibilityMiles: 7, UvIndex: 1,
			SkyCondition:  models.SkyMostlyCloudy,
			Wind:          wind(22, models.WindNNW, gust(38)),
			Precipitation: precip(models.PrecipSnow, 0.8, 70),
		},
	}
}

func builtinBaselines() map[string]forecast.Baseline {
	return map[string]forecast.Baseline{
		"den01": {BaseTempF: 42, RangeF: 8, Sky: models.SkyPartlyCloudy, WindDirection: models.WindNW, WindSpeedMph: 12.5, PrecipType: models.PrecipNone, PrecipProbability: 5},
		"mia01": {BaseTempF: 84, RangeF: 4, Sky: models.SkyMostlyCloudy, WindDirection: models.WindSE, WindSpeedMph: 8, PrecipType: models.PrecipRain, PrecipProbability: 60},
		"sea01": {BaseTempF: 52, RangeF: 3, Sky: models.SkyOvercast, WindDirection: models.WindS, WindSpeedMph: 6, PrecipType: models.PrecipRain, PrecipProbability: 85},
		"phx01": {BaseTempF: 105, RangeF: 6, Sky: models.SkyClear, WindDirection: models.WindWSW, WindSpeedMph: 4, PrecipType: models.PrecipNone, PrecipProbability: 0},
		"chi01": {BaseTempF: 18, RangeF: 5, Sky: models.SkyMostlyCloudy, WindDirection: models.WindNNW, WindSpeedMph: 22, PrecipType: models.PrecipSnow, PrecipProbability: 70},
	}
}

func builtinDaily() map[string][]forecast.DailyRow {
	return map[string][]forecast.DailyRow{
		"den01": {
			day(45, 22, models.SkyPartlyCloudy, wind(10, models.WindNW, gust(18)), precip(models.PrecipNone, 0, 5), "06:42", "17:28"),
			day(38, 18, models.SkyMostlyCloudy, wind(15, models.WindN, gust(25)), precip(models.PrecipSnow, 0.2, 40), "06:41", "17:29"),
			day(32, 12, models.SkyOvercast, wind(18, models.WindNNW, gust(30)), precip(models.PrecipSnow, 1.5, 80), "06:40", "17:30"),
			day(35, 15, models.SkyMostlyCloudy, wind(12, models.WindW, gust(20)), precip(models.PrecipSnow, 0.3, 35), "06:39", "17:31"),
			day(48, 25, models.SkyClear, wind(8, models.WindSW, nil), precip(models.PrecipNone, 0, 0), "06:38", "17:33"),
			day(55, 30, models.SkyClear, wind(6, models.WindS, nil), precip(models.PrecipNone, 0, 0), "06:37", "17:34"),
			day(50, 28, models.SkyPartlyCloudy, wind(10, models.WindNW, gust(16)), precip(models.PrecipNone, 0, 10), "06:36", "17:35"),
		},
		"mia01": {
			day(86, 76, models.SkyMostlyCloudy, wind(8, models.WindSE, nil), precip(models.PrecipRain, 0.3, 65), "06:55", "18:12"),
			day(88, 78, models.SkyPartlyCloudy, wind(10, models.WindE, gust(15)), precip(models.PrecipRain, 0.1, 40), "06:55", "18:13"),
			day(85, 77, models.SkyOvercast, wind(14, models.WindESE, gust(22)), precip(models.PrecipRain, 0.8, 80), "06:54", "18:13"),
			day(83, 75, models.SkyOvercast, wind(18, models.WindE, gust(28)), precip(models.PrecipRain, 1.2, 90), "06:54", "18:14"),
			day(82, 74, models.SkyMostlyCloudy, wind(20, models.WindENE, gust(32)), precip(models.PrecipRain, 0.6, 70), "06:53", "18:14"),
			day(84, 76, models.SkyPartlyCloudy, wind(12, models.WindSE, nil), precip(models.PrecipRain, 0.2, 45), "06:53", "18:15"),
			day(87, 77, models.SkyPartlyCloudy, wind(8, models.WindS, nil), precip(models.PrecipNone, 0, 20), "06:52", "18:15"),
		},
		"sea01": {
			day(53, 44, models.SkyOvercast, wind(6, models.WindS, gust(11)), precip(models.PrecipRain, 0.4, 85), "07:22", "17:15"),
			day(51, 43, models.SkyOvercast, wind(8, models.WindSSW, gust(14)), precip(models.PrecipRain, 0.6, 90), "07:21", "17:16"),
			day(50, 42, models.SkyMostlyCloudy, wind(10, models.WindSW, gust(16)), precip(models.PrecipRain, 0.3, 75), "07:20", "17:18"),
			day(52, 44, models.SkyOvercast, wind(7, models.WindS, gust(12)), precip(models.PrecipRain, 0.5, 80), "07:19", "17:19"),
			day(55, 45, models.SkyMostlyCloudy, wind(5, models.WindW, nil), precip(models.PrecipRain, 0.1, 50), "07:18", "17:20"),
			day(57, 46, models.SkyPartlyCloudy, wind(4, models.WindNW, nil), precip(models.PrecipNone, 0, 25), "07:17", "17:22"),
			day(54, 44, models.SkyOvercast, wind(8, models.WindSSW, gust(13)), precip(models.PrecipRain, 0.4, 80), "07:16", "17:23"),
		},
		"phx01": {
			day(108, 82, models.SkyClear, wind(4, models.WindWSW, nil), precip(models.PrecipNone, 0, 0), "06:15", "18:35"),
			day(110, 84, models.SkyClear, wind(5, models.WindW, nil), precip(models.PrecipNone, 0, 0), "06:15", "18:36"),
			day(112, 85, models.SkyClear, wind(3, models.WindSW, nil), precip(models.PrecipNone, 0, 0), "06:14", "18:36"),
			day(109, 83, models.SkyHazy, wind(6, models.WindS, nil), precip(models.PrecipNone, 0, 5), "06:14", "18:37"),
			day(106, 80, models.SkyPartlyCloudy, wind(8, models.WindSE, gust(14)), precip(models.PrecipNone, 0, 10), "06:13", "18:37"),
			day(104, 79, models.SkyPartlyCloudy, wind(10, models.WindE, gust(16)), precip(models.PrecipRain, 0.05, 15), "06:13", "18:38"),
			day(107, 81, models.SkyClear, wind(5, models.WindWSW, nil), precip(models.PrecipNone, 0, 0), "06:12", "18:38"),
		},
		"chi01": {
			day(20, 8, models.SkyMostlyCloudy, wind(22, models.WindNNW, gust(38)), precip(models.PrecipSnow, 1.2, 75), "06:58", "17:10"),
			day(15, 2, models.SkyOvercast, wind(25, models.WindN, gust(42)), precip(models.PrecipSnow, 3.5, 95), "06:57", "17:11"),
			day(12, -2, models.SkyOvercast, wind(20, models.WindNNW, gust(35)), precip(models.PrecipSnow, 2.0, 85), "06:56", "17:12"),
			day(18, 5, models.SkyMostlyCloudy, wind(15, models.WindNW, gust(28)), precip(models.PrecipSnow, 0.5, 45), "06:55", "17:14"),
			day(25, 12, models.SkyPartlyCloudy, wind(10, models.WindW, gust(18)), precip(models.PrecipNone, 0, 15), "06:54", "17:15"),
			day(30, 18, models.SkyClear, wind(8, models.WindSW, nil), precip(models.PrecipNone, 0, 5), "06:53", "17:16"),
			day(28, 15, models.SkyMostlyCloudy, wind(12, models.WindNW, gust(20)), precip(models.PrecipSnow, 0.3, 30), "06:52", "17:18"),
		},
	}
}

func builtinAlerts() map[string][]AlertSeed {
	return map[string][]AlertSeed{
		"den01": {},
		"mia01": {
			{
				ID:             "alert-mia-001",
				Title:          "Tropical Storm Watch",
				Description:    "A tropical storm watch is in effect for coastal Miami-Dade County. Sustained winds of 40-60 mph possible with higher gusts. Prepare emergency supplies and monitor updates.",
				Severity:       models.SeverityWatch,
				Category:       models.CategoryHurricane,
				IssuedHoursAgo: 6,
				ExpiresInHours: 48,
				AffectedArea:   "Coastal Miami-Dade County",
			},
			{
				ID:             "alert-mia-002",
				Title:          "Flood Advisory",
				Description:    "Heavy rainfall expected over the next 24 hours. Urban and low-lying areas may experience localized flooding. Avoid driving through standing water.",
				Severity:       models.SeverityAdvisory,
				Category:       models.CategoryFlood,
				IssuedHoursAgo: 2,
				ExpiresInHours: 24,
				AffectedArea:   "Greater Miami Metro Area",
			},
		},
		"sea01": {},
		"phx01": {
			{
				ID:             "alert-phx-001",
				Title:          "Excessive Heat Warning",
				Description:    "Dangerously hot conditions with temperatures exceeding 110°F expected. Limit outdoor activity, stay hydrated, and never leave children or pets in vehicles.",
				Severity:       models.SeverityWarning,
				Category:       models.CategoryExtremeHeat,
				IssuedHoursAgo: 12,
				ExpiresInHours: 36,
				AffectedArea:   "Maricopa County including Phoenix Metro",
			},
		},
		"chi01": {
			{
				ID:             "alert-chi-001",
				Title:          "Winter Storm Warning",
				Description:    "Heavy snow expected with accumulations of 8-12 inches. Wind gusts up to 45 mph will cause blowing and drifting snow with near-zero visibility at times.",
				Severity:       models.SeverityWarning,
				Category:       models.CategoryWinterStorm,
				IssuedHoursAgo: 3,
				ExpiresInHours: 18,
				AffectedArea:   "Cook County and surrounding suburbs",
			},
			{
				ID:             "alert-chi-002",
				Title:          "High Wind Advisory",
				Description:    "Northwest winds 25-35 mph with gusts up to 50 mph. Secure outdoor objects. Use caution while driving, especially high-profile vehicles.",
				Severity:       models.SeverityAdvisory,
				Category:       models.CategoryHighWind,
				IssuedHoursAgo: 1,
				ExpiresInHours: 12,
				AffectedArea:   "Greater Chicago Metropolitan Area",
			},
		},
	}
}

func builtinAirQuality() map[string]models.AirQuality {
	return map[string]models.AirQuality{
		"den01": {Aqi: 45, Category: models.AirGood, PrimaryPollutant: "PM2.5", Pollutants: pollutants(8.2, 18, 32, 12, 1.5, 0.4)},
		"mia01": {Aqi: 62, Category: models.AirModerate, PrimaryPollutant: "O3", Pollutants: pollutants(11, 22, 55, 18, 3, 0.6)},
		"sea01": {Aqi: 38, Category: models.AirGood, PrimaryPollutant: "PM2.5", Pollutants: pollutants(6.5, 14, 28, 10, 1, 0.3)},
		"phx01": {Aqi: 112, Category: models.AirUnhealthyForSensitiveGroups, PrimaryPollutant: "PM10", Pollutants: pollutants(22, 85, 68, 25, 5, 1.2)},
		"chi01": {Aqi: 55, Category: models.AirModerate, PrimaryPollutant: "PM2.5", Pollutants: pollutants(14, 30, 35, 22, 4, 0.8)},
	}
}

func day(high, low float64, sky models.SkyCondition, w models.Wind, p models.Precipitation, sunrise, sunset string) forecast.DailyRow {
	return forecast.DailyRow{
		HighTempF:     high,
		LowTempF:      low,
		Sky:           sky,
		Wind:          w,
		Precipitation: p,
		Sunrise:       sunrise,
		Sunset:        sunset,
	}
}

func wind(speed float64, dir models.WindDirection, gusts *float64) models.Wind {
	return models.Wind{SpeedMph: speed, Direction: dir, GustsMph: gusts}
}

func gust(mph float64) *float64 {
	return models.Float64Ptr(mph)
}

func precip(kind models.PrecipitationType, amount float64, probability int) models.Precipitation {
	return models.Precipitation{Type: kind, AmountInches: amount, ProbabilityPercent: probability}
}

func pollutants(pm25, pm10, o3, no2, so2, co float64) map[string]float64 {
	return map[string]float64{
		"PM2.5": pm25,
		"PM10":  pm10,
		"O3":    o3,
		"NO2":   no2,
		"SO2":   so2,
		"CO":    co,
	}
}
