package app

// DemoCatalogue is the sample hotel set used to seed a fresh environment.
var DemoCatalogue = []HotelForm{
	{
		Name:        "Hotel Las Estrellas",
		Address:     "Passeig Marítim 12",
		City:        "Barcelona",
		State:       "Cataluña",
		Rating:      "4.5",
		Amenities:   "Wifi gratuito, Piscina infinita, Spa, Restaurante gourmet, Desayuno buffet incluido, Bar en la azotea",
		Description: "Hotel con vista al mar y habitaciones de lujo",
	},
	{
		Name:        "Hotel Vista Sol",
		Address:     "Blvd. Kukulcán km 9",
		City:        "Cancun",
		State:       "Quintana Roo",
		Rating:      "4.0",
		Amenities:   "Wifi gratuito, Piscina, Buffet internacional, Club nocturno, Animación en vivo, Todo incluido 24 horas",
		Description: "Hotel all-inclusive con todas las comodidades",
	},
	{
		Name:        "Hotel Montaña Azul",
		Address:     "Ruta 5 km 40",
		City:        "Cordoba",
		State:       "Córdoba",
		Rating:      "4.7",
		Amenities:   "Wifi en áreas comunes, Senderos naturales, Spa con vista panorámica, Restaurante con ingredientes locales, Actividades al aire libre",
		Description: "Rodeado de montañas, ideal para relajarse",
	},
	{
		Name:        "Resort Paraíso",
		Address:     "Paradise Island",
		City:        "Nassau",
		State:       "New Providence",
		Rating:      "4.9",
		Amenities:   "Wifi gratuito en todas las áreas, Piscina privada en cada villa, Deportes acuáticos, Spa, Cocina internacional y local, Playa privada con tumbonas",
		Description: "Resort en el Caribe con playa privada",
	},
	{
		Name:        "Hotel Ciudad Moderna",
		Address:     "Carrera 7 # 71-21",
		City:        "Bogota",
		State:       "Cundinamarca",
		Rating:      "4.2",
		Amenities:   "Wifi de alta velocidad, Centro de negocios 24 horas, Gimnasio, Restaurante ejecutivo, Salas de reuniones y conferencias, Servicio de traslado al aeropuerto",
		Description: "En pleno centro, perfecto para viajes de negocios",
	},
	{
		Name:        "Hotel Familiar Sierra",
		Address:     "Camino a la Sierra 300",
		City:        "Misiones",
		State:       "Misiones",
		Rating:      "4.3",
		Amenities:   "Club infantil, Parque acuático, Wifi gratuito, Actividades recreativas, Restaurante buffet, Servicio de niñera",
		Description: "Perfecto para familias, con actividades para niños",
	},
}
