package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

const (
	Furniture   = "furniture"
	Electronics = "electronics"
	Books       = "books"
)

func defaultCategories() []Category {
	return []Category{
		{Slug: Furniture, Title: "Furniture Rentals", Description: "Rent high-quality furniture for your home or office without the commitment of ownership."},
		{Slug: Electronics, Title: "Electronics Rentals", Description: "Stay up-to-date with the latest technology by renting premium electronics."},
		{Slug: Books, Title: "Book Rentals", Description: "Explore our extensive collection of books available for rent at affordable prices."},
	}
}

func weekly(id int, name, image, price, category string, available bool, description, details string, reviews ...Review) Product {
	return Product{
		ID:           id,
		Name:         name,
		Image:        image,
		Price:        decimal.RequireFromString(price),
		Category:     category,
		RentalPeriod: pricing.Weekly,
		Available:    available,
		Description:  description,
		Details:      details,
		Reviews:      reviews,
	}
}

func defaultProducts() []Product {
	return []Product{
		weekly(1, "Modern Lounge Chair",
			"https://images.unsplash.com/photo-1567538096621-38d2284b23ff?q=80&w=2272&auto=format&fit=crop",
			"39.99", Furniture, true,
			"A comfortable modern lounge chair with a sleek design that complements any living space. Perfect for reading or relaxing after a long day.",
			"Materials: Solid wood frame, premium upholstery\nDimensions: 35\"H x 28\"W x 30\"D\nWeight: 24 lbs\nColor: Light Gray\nAssembly: Not required",
			Review{ID: 1, Author: "Alex J.", Rating: 5, Date: "2023-10-15", Comment: "Extremely comfortable and looks great in my apartment. Really happy with the rental!"},
			Review{ID: 2, Author: "Sam T.", Rating: 4, Date: "2023-09-22", Comment: "Very stylish and comfortable. Delivery was prompt and setup was hassle-free."},
		),
		weekly(2, "Minimalist Desk",
			"https://images.unsplash.com/photo-1518455027359-f3f8164ba6bd?q=80&w=2536&auto=format&fit=crop",
			"29.99", Furniture, true,
			"A sleek minimalist desk that provides a clean workspace without cluttering your room. Ideal for home offices or student apartments.",
			"Materials: Engineered wood, steel legs\nDimensions: 30\"H x 48\"W x 24\"D\nWeight: 35 lbs\nColor: White/Black\nAssembly: Required (tools included)",
			Review{ID: 1, Author: "Jordan K.", Rating: 5, Date: "2023-11-03", Comment: "Perfect desk for my small apartment. Assembly was straightforward and it looks great!"},
		),
		weekly(3, "MacBook Pro 16\"",
			"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?q=80&w=2626&auto=format&fit=crop",
			"149.99", Electronics, true,
			"The latest MacBook Pro featuring a stunning 16-inch Retina display, powerful performance, and all-day battery life. Perfect for professionals and creatives.",
			"Specifications:\nProcessor: Apple M2 Pro\nRAM: 16GB\nStorage: 512GB SSD\nDisplay: 16\" Retina\nBattery: Up to 22 hours\nIncludes: Charger and protective sleeve",
			Review{ID: 1, Author: "Taylor R.", Rating: 5, Date: "2023-10-28", Comment: "Excellent performance! Renting was a great way to try before committing to buy. Very satisfied with this service."},
			Review{ID: 2, Author: "Morgan P.", Rating: 4, Date: "2023-09-15", Comment: "Great laptop, arrived fully charged and ready to use. Only giving 4 stars because it had a minor scratch on the bottom."},
		),
		weekly(4, "Premium Bookshelf",
			"https://images.unsplash.com/photo-1588279102906-b93c06fdc441?q=80&w=2070&auto=format&fit=crop",
			"24.99", Furniture, true,
			"A spacious bookshelf with a contemporary design that offers ample storage for books, decorative items, and more.",
			"Materials: Engineered wood with laminate finish\nDimensions: 72\"H x 36\"W x 12\"D\nWeight: 45 lbs\nColor: Walnut\nAssembly: Required",
			Review{ID: 1, Author: "Casey L.", Rating: 4, Date: "2023-08-20", Comment: "Sturdy bookshelf with plenty of space. Assembly took longer than expected but the end result is worth it."},
		),
		weekly(5, "4K Smart TV - 55\"",
			"https://images.unsplash.com/photo-1593305841991-05c297ba4575?q=80&w=2057&auto=format&fit=crop",
			"79.99", Electronics, false,
			"A stunning 4K Smart TV with HDR and built-in streaming apps. Perfect for movie nights and gaming sessions.",
			"Specifications:\nScreen: 55\" 4K UHD\nResolution: 3840x2160\nConnections: 4x HDMI, 2x USB, Ethernet, Wi-Fi\nFeatures: HDR10, Dolby Vision, built-in streaming apps\nIncludes: Remote, wall mount kit, and HDMI cable",
			Review{ID: 1, Author: "Riley J.", Rating: 5, Date: "2023-07-15", Comment: "Amazing picture quality! Was perfect for our weekend movie marathon."},
		),
		weekly(6, "Bestseller Book Collection",
			"https://images.unsplash.com/photo-1512820790803-83ca734da794?q=80&w=2098&auto=format&fit=crop",
			"9.99", Books, true,
			"A curated collection of this year's bestselling novels, spanning multiple genres from mystery and thriller to romance and science fiction.",
			"Collection includes:\n- 5 hardcover bestsellers\n- 3 paperback novels\n- Reading guide\n- Protective book covers\nGenres: Fiction, Mystery, Thriller, Romance, Science Fiction",
			Review{ID: 1, Author: "Jamie T.", Rating: 5, Date: "2023-09-10", Comment: "Amazing selection! Saved so much money by renting these instead of buying them all individually."},
			Review{ID: 2, Author: "Pat D.", Rating: 4, Date: "2023-08-28", Comment: "Great variety of books. One arrived with slightly bent pages, but otherwise perfect."},
		),
		weekly(7, "Ergonomic Office Chair",
			"https://images.unsplash.com/photo-1580480055273-228ff5388ef8?q=80&w=2073&auto=format&fit=crop",
			"34.99", Furniture, true,
			"An ergonomic office chair designed for comfort during long work sessions. Features adjustable height, lumbar support, and padded armrests.",
			"Materials: Mesh back, padded seat, steel frame\nAdjustments: Height, armrests, tilt, lumbar support\nWeight capacity: 300 lbs\nColor: Black\nAssembly: Minimal assembly required",
			Review{ID: 1, Author: "Jordan B.", Rating: 5, Date: "2023-10-05", Comment: "My back thanks me every day! This chair made working from home so much more comfortable."},
		),
		weekly(8, "Wireless Noise-Cancelling Headphones",
			"https://images.unsplash.com/photo-1546435770-a3e426bf472b?q=80&w=2065&auto=format&fit=crop",
			"29.99", Electronics, true,
			"Premium wireless headphones with active noise cancellation, delivering immersive sound quality and all-day comfort.",
			"Specifications:\nType: Over-ear\nBattery life: Up to 30 hours\nConnectivity: Bluetooth 5.0, 3.5mm cable\nFeatures: Active noise cancellation, voice assistant support\nIncludes: Carrying case, charging cable, and audio cable",
			Review{ID: 1, Author: "Alex R.", Rating: 5, Date: "2023-11-15", Comment: "These headphones are amazing! The noise cancellation is perfect for my daily commute."},
			Review{ID: 2, Author: "Sam W.", Rating: 4, Date: "2023-10-22", Comment: "Great sound quality and comfortable to wear for long periods. Battery life is impressive."},
		),
		weekly(9, "Classic Literature Bundle",
			"https://images.unsplash.com/photo-1519682577862-22b62b24e493?q=80&w=2070&auto=format&fit=crop",
			"14.99", Books, true,
			"A collection of classic literature featuring beautifully bound editions of timeless works from renowned authors throughout history.",
			"Collection includes:\n- 10 hardcover classics\n- Author biographies\n- Literary analysis guides\n- Custom bookmarks\nAuthors include: Austen, Dickens, Tolstoy, Bronte, and more",
			Review{ID: 1, Author: "Morgan L.", Rating: 5, Date: "2023-08-18", Comment: "Beautiful editions of these classic works. Perfect for my literary-themed event."},
		),
		weekly(10, "Self Improvement Collection",
			"https://images.unsplash.com/photo-1544947950-fa07a98d237f?q=80&w=2087&auto=format&fit=crop",
			"12.99", Books, true,
			"A carefully selected collection of bestselling self-improvement books covering topics such as productivity, mindfulness, health, and personal finance.",
			"Collection includes:\n- 7 hardcover books\n- Workbooks and journals\n- Reading guides\n- Note-taking materials\nTopics: Productivity, Mindfulness, Health, Finance, Relationships",
			Review{ID: 1, Author: "Taylor S.", Rating: 5, Date: "2023-09-30", Comment: "These books have genuinely changed my perspective. Great selection at an affordable rental price."},
			Review{ID: 2, Author: "Jordan K.", Rating: 4, Date: "2023-09-05", Comment: "Really enjoyed most of the books in this collection. The workbooks were especially helpful."},
		),
	}
}
