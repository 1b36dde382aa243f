package i18n

// Catalogs are flat key/value maps; keys group by page with dot notation.
var catalogs = map[string]map[string]string{
	"en": {
		"app.name": "Kasa",

		"nav.dashboard":    "Dashboard",
		"nav.transactions": "Transactions",
		"nav.categories":   "Categories",
		"nav.settings":     "Settings",
		"nav.currency":     "Currency",
		"nav.language":     "Language",

		"common.cancel":  "Cancel",
		"common.delete":  "Delete",
		"common.save":    "Save",
		"common.edit":    "Edit",
		"common.add":     "Add",
		"common.warning": "Warning",
		"common.actions": "Actions",

		"dashboard.title":          "Dashboard",
		"dashboard.total_balance":  "Total Balance",
		"dashboard.total_income":   "Total Income",
		"dashboard.total_expenses": "Total Expenses",
		"dashboard.monthly_trends": "Monthly Trends",
		"dashboard.month":          "Month",
		"dashboard.income":         "Income",
		"dashboard.expenses":       "Expenses",
		"dashboard.category":       "Category",
		"dashboard.amount":         "Amount",
		"dashboard.no_transactions": "No transactions found",

		"transactions.title":           "Transactions",
		"transactions.add":             "Add Transaction",
		"transactions.description":     "Description",
		"transactions.amount":          "Amount",
		"transactions.type":            "Type",
		"transactions.category":        "Category",
		"transactions.select_category": "Select a category",
		"transactions.date":            "Date",
		"transactions.income":          "Income",
		"transactions.expense":         "Expense",
		"transactions.none":            "No transactions found",
		"transactions.delete_confirm":  "Are you sure you want to delete this transaction?",

		"categories.title":          "Categories",
		"categories.add":            "Add Category",
		"categories.edit":           "Edit Category",
		"categories.name":           "Name",
		"categories.icon":           "Icon",
		"categories.budget":         "Budget",
		"categories.budget_optional": "Budget (Optional)",
		"categories.no_budget":      "No budget set",
		"categories.income":         "Income",
		"categories.expenses":       "Expenses",
		"categories.balance":        "Balance",
		"categories.none":           "No categories found",
		"categories.limit":          "Maximum category limit (20) reached",
		"categories.delete_confirm": "Are you sure you want to delete this category?",
		"categories.delete_warning": "This category has associated transactions. Deleting the category will also delete all related transactions. Are you sure you want to continue?",
		"categories.budget_warning": "Warning: Expenses have reached 80% of budget",

		"settings.title": "Settings",
	},
	"tr": {
		"app.name": "Kasa",

		"nav.dashboard":    "Panel",
		"nav.transactions": "İşlemler",
		"nav.categories":   "Kategoriler",
		"nav.settings":     "Ayarlar",
		"nav.currency":     "Para Birimi",
		"nav.language":     "Dil",

		"common.cancel":  "İptal",
		"common.delete":  "Sil",
		"common.save":    "Kaydet",
		"common.edit":    "Düzenle",
		"common.add":     "Ekle",
		"common.warning": "Uyarı",
		"common.actions": "İşlemler",

		"dashboard.title":          "Panel",
		"dashboard.total_balance":  "Toplam Bakiye",
		"dashboard.total_income":   "Toplam Gelir",
		"dashboard.total_expenses": "Toplam Gider",
		"dashboard.monthly_trends": "Aylık Trendler",
		"dashboard.month":          "Ay",
		"dashboard.income":         "Gelir",
		"dashboard.expenses":       "Gider",
		"dashboard.category":       "Kategori",
		"dashboard.amount":         "Tutar",
		"dashboard.no_transactions": "İşlem bulunamadı",

		"transactions.title":           "İşlemler",
		"transactions.add":             "İşlem Ekle",
		"transactions.description":     "Açıklama",
		"transactions.amount":          "Tutar",
		"transactions.type":            "Tür",
		"transactions.category":        "Kategori",
		"transactions.select_category": "Kategori seçin",
		"transactions.date":            "Tarih",
		"transactions.income":          "Gelir",
		"transactions.expense":         "Gider",
		"transactions.none":            "İşlem bulunamadı",
		"transactions.delete_confirm":  "Bu işlemi silmek istediğinizden emin misiniz?",

		"categories.title":          "Kategoriler",
		"categories.add":            "Kategori Ekle",
		"categories.edit":           "Kategori Düzenle",
		"categories.name":           "İsim",
		"categories.icon":           "İkon",
		"categories.budget":         "Bütçe",
		"categories.budget_optional": "Bütçe (İsteğe bağlı)",
		"categories.no_budget":      "Bütçe belirlenmedi",
		"categories.income":         "Gelir",
		"categories.expenses":       "Gider",
		"categories.balance":        "Bakiye",
		"categories.none":           "Kategori bulunamadı",
		"categories.limit":          "Maksimum kategori limitine (20) ulaşıldı",
		"categories.delete_confirm": "Bu kategoriyi silmek istediğinizden emin misiniz?",
		"categories.delete_warning": "Bu kategorinin ilişkili işlemleri var. Kategoriyi silmek, ilgili tüm işlemleri de silecektir. Devam etmek istediğinizden emin misiniz?",
		"categories.budget_warning": "Uyarı: Harcamalar bütçenin %80'ine ulaştı",

		"settings.title": "Ayarlar",
	},
}
