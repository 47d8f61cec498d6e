package seed

import "github.com/acamacho/dulceria/internal/server/models"

// catalogSeed is the initial dessert catalog. Image keys point at objects
// expected to exist in the images bucket.
var catalogSeed = []models.Product{
	{
		Name:        "Cheesecake de Fresa",
		Price:       45000,
		ImageKey:    "Cheesecake-de-fresa.webp",
		Description: "Delicioso cheesecake con una base de galleta horneada y cubierta con fresas frescas. Una combinación perfecta de cremosidad y sabor frutal.",
		Rating:      4.8,
		Ingredients: "Queso crema, galletas digestivas, mantequilla, fresas, azúcar, vainilla, harina de maíz",
	},
	{
		Name:        "Cholado",
		Price:       15000,
		ImageKey:    "cholado.webp",
		Description: "Bebida refrescante hecha a base de hielo, jarabe de frutas, conservas, soda y leche condensada. Tradicional de Colombia.",
		Rating:      4.7,
		Ingredients: "Hielo, jarabe de frutas, conservas de frutas, soda, leche condensada, frutas variadas",
	},
	{
		Name:        "Churros",
		Price:       12000,
		ImageKey:    "churros.webp",
		Description: "Churros crujientes y dorados, perfectos para acompañar con chocolate caliente o café. Clásico de la pastelería.",
		Rating:      4.6,
		Ingredients: "Harina, agua, sal, aceite, azúcar, canela",
	},
	{
		Name:        "Crema de Papaya",
		Price:       28000,
		ImageKey:    "crema_de_papaya.webp",
		Description: "Postre cremoso elaborado con pulpa de papaya fresca, nata y leche. Un toque tropical y refrescante.",
		Rating:      4.5,
		Ingredients: "Papaya fresca, nata, leche, azúcar, gelatina, vainilla",
	},
	{
		Name:        "Fondant au Chocolat",
		Price:       38000,
		ImageKey:    "fondant-au-chocolat.webp",
		Description: "Exquisito postre francés de chocolate con interior líquido y cremoso. Acompañado con salsa de chocolate.",
		Rating:      4.9,
		Ingredients: "Chocolate oscuro, mantequilla, huevos, harina, azúcar, vainilla, cacao en polvo",
	},
	{
		Name:        "Gelato",
		Price:       18000,
		ImageKey:    "gelato.webp",
		Description: "Helado italiano artesanal con textura cremosa y intenso sabor. Disponible en diversos sabores.",
		Rating:      4.8,
		Ingredients: "Leche, nata, azúcar, yemas de huevo, saborizantes naturales",
	},
	{
		Name:        "Milhojas",
		Price:       32000,
		ImageKey:    "milhojas.webp",
		Description: "Pastel tradicional de mil hojas con crema pastelera entre capas de hojaldre crujiente y cobertura de merengue.",
		Rating:      4.7,
		Ingredients: "Hojaldre, crema pastelera, leche, huevos, harina, mantequilla, azúcar, merengue",
	},
	{
		Name:        "Panna Cotta",
		Price:       35000,
		ImageKey:    "pana_cotta.webp",
		Description: "Postre italiano cremoso y suave elaborado con nata fresca. Se sirve con salsa de frutas rojas.",
		Rating:      4.8,
		Ingredients: "Nata fresca, leche, azúcar, gelatina, vainilla, frutas rojas",
	},
	{
		Name:        "Pastafrola",
		Price:       22000,
		ImageKey:    "pastafrola.webp",
		Description: "Dulce tradicional latinoamericano con masa de sablé rellena de dulce de membrillo, cubierta con tiras de masa entrecruzadas.",
		Rating:      4.6,
		Ingredients: "Harina, mantequilla, azúcar, huevos, dulce de membrillo, vainilla, sal",
	},
	{
		Name:        "Pastéis de Belém",
		Price:       24000,
		ImageKey:    "pasteis_belem.webp",
		Description: "Pastelillos portugueses con hojaldre crujiente rellenos de crema de huevo y canela. Espolvoreados con canela y azúcar.",
		Rating:      4.7,
		Ingredients: "Hojaldre, yemas de huevo, leche, azúcar, canela, vainilla",
	},
	{
		Name:        "Pavlova",
		Price:       40000,
		ImageKey:    "pavlola.webp",
		Description: "Postre elegante de merengue crujiente con interior suave, coronado con nata y frutas frescas.",
		Rating:      4.9,
		Ingredients: "Claras de huevo, azúcar, nata, frutas frescas, vainilla, almidón de maíz",
	},
	{
		Name:        "Tiramisú",
		Price:       36000,
		ImageKey:    "tiramisu.webp",
		Description: "Postre italiano capas de bizcocho remojado en café, mascarpone cremoso y cacao en polvo. Un clásico irresistible.",
		Rating:      4.9,
		Ingredients: "Bizcocho, café, mascarpone, huevos, azúcar, cacao en polvo, vainilla",
	},
	{
		Name:        "Torta Tres Leches",
		Price:       42000,
		ImageKey:    "torta-tres-leches.webp",
		Description: "Torta clásica latinoamericana humedecida con tres tipos de leche, cubierta con merengue o nata. Suave y deliciosa.",
		Rating:      4.8,
		Ingredients: "Harina, huevos, azúcar, leche evaporada, leche condensada, crema de leche, vainilla",
	},
	{
		Name:        "Torta de Chocolate",
		Price:       38000,
		ImageKey:    "torta_chocolate.webp",
		Description: "Torta húmeda de chocolate intenso con capas de ganache de chocolate y cobertura espejo. Para los amantes del chocolate.",
		Rating:      4.9,
		Ingredients: "Chocolate oscuro, harina, huevos, azúcar, mantequilla, cacao en polvo, vainilla",
	},
}
