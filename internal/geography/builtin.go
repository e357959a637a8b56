package geography

import "freight-planner-service/internal/domain"

func loc(code, city, country string, lat, lng float64, c domain.Continent, coastal, airport bool) domain.ExtendedLocation {
	return domain.ExtendedLocation{
		Location:   domain.Location{Lat: lat, Lng: lng, City: city, Country: country},
		Code:       code,
		Continent:  c,
		IsCoastal:  coastal,
		HasAirport: airport,
	}
}

// Builtin returns the bundled reference locations. The same set ships as
// data/seeds/locations.json for the SQL-backed repository.
func Builtin() []domain.ExtendedLocation {
	return []domain.ExtendedLocation{
		loc("new-york", "New York", "US", 40.7128, -74.0060, domain.NorthAmerica, true, true),
		loc("los-angeles", "Los Angeles", "US", 34.0522, -118.2437, domain.NorthAmerica, true, true),
		loc("chicago", "Chicago", "US", 41.8781, -87.6298, domain.NorthAmerica, false, true),
		loc("denver", "Denver", "US", 39.7392, -104.9903, domain.NorthAmerica, false, true),
		loc("mexico-city", "Mexico City", "MX", 19.4326, -99.1332, domain.NorthAmerica, false, true),
		loc("sao-paulo", "Sao Paulo", "BR", -23.5505, -46.6333, domain.SouthAmerica, true, true),
		loc("santos", "Santos", "BR", -23.9608, -46.3336, domain.SouthAmerica, true, false),
		loc("buenos-aires", "Buenos Aires", "AR", -34.6037, -58.3816, domain.SouthAmerica, true, true),
		loc("london", "London", "GB", 51.5074, -0.1278, domain.Europe, true, true),
		loc("felixstowe", "Felixstowe", "GB", 51.9617, 1.3513, domain.Europe, true, false),
		loc("paris", "Paris", "FR", 48.8566, 2.3522, domain.Europe, false, true),
		loc("berlin", "Berlin", "DE", 52.5200, 13.4050, domain.Europe, false, true),
		loc("rotterdam", "Rotterdam", "NL", 51.9244, 4.4777, domain.Europe, true, true),
		loc("madrid", "Madrid", "ES", 40.4168, -3.7038, domain.Europe, false, true),
		loc("cairo", "Cairo", "EG", 30.0444, 31.2357, domain.Africa, false, true),
		loc("lagos", "Lagos", "NG", 6.5244, 3.3792, domain.Africa, true, true),
		loc("johannesburg", "Johannesburg", "ZA", -26.2041, 28.0473, domain.Africa, false, true),
		loc("nairobi", "Nairobi", "KE", -1.2921, 36.8219, domain.Africa, false, true),
		loc("dubai", "Dubai", "AE", 25.2048, 55.2708, domain.Asia, true, true),
		loc("mumbai", "Mumbai", "IN", 19.0760, 72.8777, domain.Asia, true, true),
		loc("shanghai", "Shanghai", "CN", 31.2304, 121.4737, domain.Asia, true, true),
		loc("tokyo", "Tokyo", "JP", 35.6762, 139.6503, domain.Asia, true, true),
		loc("singapore", "Singapore", "SG", 1.3521, 103.8198, domain.Asia, true, true),
		loc("sydney", "Sydney", "AU", -33.8688, 151.2093, domain.Oceania, true, true),
		loc("auckland", "Auckland", "NZ", -36.8485, 174.7633, domain.Oceania, true, true),
	}
}
