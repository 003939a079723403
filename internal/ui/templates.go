package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"money": money,
	"add": func(a, b int) int {
		return a + b
	},
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"tabClass": func(current, tab string) string {
		if current == tab {
			return "border-indigo-500 text-gray-900"
		}
		return "border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700"
	},
}

// parseComponents adds the shared components to tmpl.
func parseComponents(tmpl *template.Template) error {
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			if _, err := tmpl.New(filepath.Base(compName)).Parse(compContent); err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}
	return nil
}

// renderTemplate renders a page inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	if _, err = tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	if err := parseComponents(tmpl); err != nil {
		return err
	}

	return tmpl.Execute(w, data)
}

// renderComponent renders a single component without the layout, for htmx
// partial updates.
func renderComponent(w io.Writer, name string, data any) error {
	if _, ok := templates[name]; !ok || !strings.HasPrefix(name, "components/") {
		return fmt.Errorf("component not found: %s", name)
	}

	tmpl := template.New("components").Funcs(templateFuncs)
	if err := parseComponents(tmpl); err != nil {
		return err
	}

	return tmpl.ExecuteTemplate(w, filepath.Base(name), data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        .htmx-indicator { display: none; }
        .htmx-request .htmx-indicator { display: inline-block; }
        .htmx-request.htmx-indicator { display: inline-block; }
    </style>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">
                        Vertex
                    </a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/products" class="{{tabClass .Tab "products"}} inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Products
                        </a>
                        <a href="/sales" class="{{tabClass .Tab "sales"}} inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Sales
                        </a>
                        <a href="/report" class="{{tabClass .Tab "report"}} inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            Reports
                        </a>
                    </div>
                </div>
                <div class="flex items-center space-x-4">
                    {{if or (eq .Tab "products") (eq .Tab "sales")}}
                    <input type="search" name="search" placeholder="Search {{.Tab}}..."
                           value="{{with .Table}}{{.View.Search}}{{end}}"
                           hx-get="/{{.Tab}}/table?action=search"
                           hx-trigger="keyup changed delay:300ms, search"
                           hx-target="#datatable" hx-swap="outerHTML"
                           class="block w-64 rounded-md border-gray-300 shadow-sm focus:border-indigo-500 focus:ring-indigo-500 sm:text-sm px-3 py-1.5 border">
                    {{end}}
                    <span class="text-sm text-gray-500">Welcome, {{.Session.Username}}</span>
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Logout</a>
                </div>
            </div>
        </div>
    </nav>
    {{end}}

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"login": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center bg-gray-50 py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">
                Vertex Dashboard
            </h2>
            <p class="mt-2 text-center text-sm text-gray-600">
                Sign in to manage products and sales
            </p>
        </div>
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-6" action="/login" method="POST" novalidate>
            <div class="space-y-4">
                <div>
                    <label for="username" class="block text-sm font-medium text-gray-700">Username</label>
                    <input id="username" name="username" type="text" value="{{.Username}}"
                           class="mt-1 appearance-none block w-full px-3 py-2 border border-gray-300 rounded-md placeholder-gray-500 text-gray-900 focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm">
                    {{with .Errors}}{{with .Get "username"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}{{end}}
                </div>
                <div>
                    <label for="password" class="block text-sm font-medium text-gray-700">Password</label>
                    <input id="password" name="password" type="password"
                           class="mt-1 appearance-none block w-full px-3 py-2 border border-gray-300 rounded-md placeholder-gray-500 text-gray-900 focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm">
                    {{with .Errors}}{{with .Get "password"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}{{end}}
                </div>
            </div>
            <div>
                <button type="submit"
                        class="group relative w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700 focus:outline-none focus:ring-2 focus:ring-offset-2 focus:ring-indigo-500">
                    Sign in
                </button>
            </div>
        </form>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center">
    <div class="text-center">
        <h1 class="text-4xl font-bold text-gray-900 mb-4">Error</h1>
        <p class="text-gray-600 mb-8">{{.Message}}</p>
        <a href="/" class="text-indigo-600 hover:text-indigo-500">Return to Dashboard</a>
    </div>
</div>
{{end}}`,

	"products": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center mb-6">
        <h1 class="text-2xl font-semibold text-gray-900">Products</h1>
        <a href="/products/new" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Add Product
        </a>
    </div>
    {{template "datatable" .Table}}
</div>
{{end}}`,

	"products/form": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-xl">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">{{.Heading}}</h1>
    {{if .Error}}
    <div class="rounded-md bg-red-50 p-4 mb-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}
    <form action="{{.Action}}" method="POST" class="bg-white shadow rounded-lg p-6 space-y-4" novalidate>
        <div>
            <label for="name" class="block text-sm font-medium text-gray-700">Name</label>
            <input id="name" name="name" type="text" value="{{.Form.Name}}"
                   class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
            {{with .Errors.Get "name"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <div>
            <label for="price" class="block text-sm font-medium text-gray-700">Price</label>
            <input id="price" name="price" type="number" step="0.01" value="{{.Form.PriceString}}"
                   class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
            {{with .Errors.Get "price"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <div>
            <label for="quantity" class="block text-sm font-medium text-gray-700">Quantity</label>
            <input id="quantity" name="quantity" type="number" value="{{.Form.Quantity}}"
                   class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
            {{with .Errors.Get "quantity"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <div class="flex justify-end space-x-3">
            <a href="/products" class="px-4 py-2 text-sm text-gray-700 border border-gray-300 rounded-md hover:bg-gray-50">Cancel</a>
            <button type="submit" class="px-4 py-2 text-sm font-medium text-white bg-indigo-600 rounded-md hover:bg-indigo-700">Save</button>
        </div>
    </form>
</div>
{{end}}`,

	"sales": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center mb-6">
        <h1 class="text-2xl font-semibold text-gray-900">Sales</h1>
        <a href="/sales/new" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Record Sale
        </a>
    </div>
    {{template "datatable" .Table}}
</div>
{{end}}`,

	"sales/form": `{{define "content"}}
<div class="px-4 py-6 sm:px-0 max-w-xl">
    <h1 class="text-2xl font-semibold text-gray-900 mb-6">Record Sale</h1>
    {{if .Error}}
    <div class="rounded-md bg-red-50 p-4 mb-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}
    <form action="/sales" method="POST" class="bg-white shadow rounded-lg p-6 space-y-4" novalidate>
        <div>
            <label for="productId" class="block text-sm font-medium text-gray-700">Product</label>
            <select id="productId" name="productId" class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
                <option value="" data-price="0">Select a product</option>
                {{range .Products}}
                <option value="{{.ID}}" data-price="{{price .Price}}" {{if eq .ID $.Form.ProductID}}selected{{end}}>
                    {{.Name}} ({{money .Price}}, {{.Quantity}} in stock)
                </option>
                {{end}}
            </select>
            {{with .Errors.Get "productId"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <div>
            <label for="quantity" class="block text-sm font-medium text-gray-700">Quantity</label>
            <input id="quantity" name="quantity" type="number" min="1" value="{{.Form.Quantity}}"
                   class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
            {{with .Errors.Get "quantity"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <div>
            <label for="date" class="block text-sm font-medium text-gray-700">Date</label>
            <input id="date" name="date" type="date" value="{{.Form.Date}}"
                   class="mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 sm:text-sm">
            {{with .Errors.Get "date"}}<p class="mt-1 text-sm text-red-600">{{.}}</p>{{end}}
        </div>
        <p class="text-sm text-gray-700">Total: <span id="sale-total" class="font-semibold">{{.Total}}</span></p>
        <div class="flex justify-end space-x-3">
            <a href="/sales" class="px-4 py-2 text-sm text-gray-700 border border-gray-300 rounded-md hover:bg-gray-50">Cancel</a>
            <button type="submit" class="px-4 py-2 text-sm font-medium text-white bg-indigo-600 rounded-md hover:bg-indigo-700">Save</button>
        </div>
    </form>
</div>
<script>
(function() {
    const product = document.getElementById('productId');
    const quantity = document.getElementById('quantity');
    const total = document.getElementById('sale-total');
    function update() {
        const opt = product.options[product.selectedIndex];
        const price = parseFloat(opt ? opt.dataset.price : '0') || 0;
        const qty = parseInt(quantity.value, 10) || 0;
        total.textContent = (price * qty).toLocaleString('en-US', {style: 'currency', currency: 'USD'});
    }
    product.addEventListener('change', update);
    quantity.addEventListener('input', update);
})();
</script>
{{end}}`,

	"report": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="flex justify-between items-center mb-6">
        <h1 class="text-2xl font-semibold text-gray-900">Sales Report</h1>
        <a href="/report/export" class="inline-flex items-center px-4 py-2 border border-transparent text-sm font-medium rounded-md shadow-sm text-white bg-indigo-600 hover:bg-indigo-700">
            Download Report
        </a>
    </div>
    {{if .Error}}
    <div class="rounded-md bg-red-50 p-4 mb-4">
        <div class="text-sm text-red-700">{{.Error}}</div>
    </div>
    {{end}}

    <div class="grid grid-cols-1 gap-5 sm:grid-cols-2 mb-8">
        <div class="bg-white overflow-hidden shadow rounded-lg p-5">
            <dt class="text-sm font-medium text-gray-500 truncate">Total Sales</dt>
            <dd class="mt-1 text-3xl font-semibold text-gray-900">{{.TotalSales}}</dd>
        </div>
        <div class="bg-white overflow-hidden shadow rounded-lg p-5">
            <dt class="text-sm font-medium text-gray-500 truncate">Products Sold</dt>
            <dd class="mt-1 text-3xl font-semibold text-gray-900">{{.TotalProductsSold}}</dd>
        </div>
    </div>

    <div class="grid grid-cols-1 gap-5 lg:grid-cols-2 mb-8">
        <div class="bg-white shadow rounded-lg p-5">
            <h2 class="text-lg font-medium text-gray-900 mb-4">Sales Trend</h2>
            <canvas id="trend-chart"></canvas>
        </div>
        <div class="bg-white shadow rounded-lg p-5">
            <h2 class="text-lg font-medium text-gray-900 mb-4">Sales by Product</h2>
            <canvas id="share-chart"></canvas>
        </div>
    </div>

    {{if .Exports}}
    <div class="bg-white shadow rounded-lg p-5">
        <h2 class="text-lg font-medium text-gray-900 mb-4">Recent Downloads</h2>
        <ul class="divide-y divide-gray-200">
            {{range .Exports}}
            <li class="py-2 flex justify-between text-sm">
                <span class="text-gray-900" title="{{.Location}}">{{.Filename}}</span>
                <span class="text-gray-500">{{.Size}} &middot; {{.When}}</span>
            </li>
            {{end}}
        </ul>
    </div>
    {{end}}
</div>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<script>
(function() {
    const trend = {{.Trend}};
    const shares = {{.Shares}};
    new Chart(document.getElementById('trend-chart'), {
        type: 'line',
        data: {labels: trend.labels, datasets: [{label: 'Sales', data: trend.values, borderColor: '#4f46e5', tension: 0.2}]}
    });
    new Chart(document.getElementById('share-chart'), {
        type: 'pie',
        data: {labels: shares.labels, datasets: [{data: shares.values}]}
    });
})();
</script>
{{end}}`,

	"components/datatable": `<div id="datatable" class="bg-white shadow rounded-lg overflow-hidden" hx-target="this" hx-swap="outerHTML">
    {{$actions := eq .Kind "products"}}
    {{if .View.Error}}
    <div class="bg-yellow-50 px-4 py-2 text-sm text-yellow-800">Data could not be loaded. Try reloading the table.</div>
    {{end}}
    <table class="min-w-full divide-y divide-gray-200">
        <thead class="bg-gray-50">
            <tr>
                {{range .View.Headers}}
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">{{.Label}}</th>
                {{end}}
                {{if $actions}}<th class="px-6 py-3 text-right text-xs font-medium text-gray-500 uppercase tracking-wider">Actions</th>{{end}}
            </tr>
        </thead>
        <tbody class="bg-white divide-y divide-gray-200">
            {{if .View.Empty}}
            <tr>
                <td colspan="{{if $actions}}{{add .View.ColSpan 1}}{{else}}{{.View.ColSpan}}{{end}}" class="px-6 py-8 text-center text-sm text-gray-500">No data</td>
            </tr>
            {{else}}
            {{range .View.Rows}}
            <tr>
                {{range .Cells}}
                <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">{{.}}</td>
                {{end}}
                {{if $actions}}
                <td class="px-6 py-4 whitespace-nowrap text-right text-sm font-medium space-x-2">
                    <a href="/products/{{.Record.ID}}/edit" class="text-indigo-600 hover:text-indigo-900">Edit</a>
                    <form action="/products/{{.Record.ID}}/delete" method="POST" class="inline" onsubmit="return confirm('Delete this product?');">
                        <button type="submit" class="text-red-600 hover:text-red-900">Delete</button>
                    </form>
                </td>
                {{end}}
            </tr>
            {{end}}
            {{end}}
        </tbody>
    </table>
    <div class="bg-white px-4 py-3 flex items-center justify-between border-t border-gray-200 sm:px-6">
        <div class="flex items-center space-x-2 text-sm text-gray-700">
            <label for="{{.View.Name}}-size">Rows per page</label>
            <select id="{{.View.Name}}-size" name="size" hx-get="{{.Endpoint}}?action=size" hx-trigger="change"
                    class="rounded-md border border-gray-300 px-2 py-1 text-sm">
                {{$size := .View.PageSize}}
                {{range .View.PageSizes}}
                <option value="{{.}}" {{if eq . $size}}selected{{end}}>{{.}}</option>
                {{end}}
            </select>
            <span class="htmx-indicator text-gray-400">Loading...</span>
            {{if .View.Loading}}<span class="text-gray-400">Loading...</span>{{end}}
        </div>
        <div class="flex items-center space-x-3 text-sm text-gray-700">
            <button hx-get="{{.Endpoint}}?action=prev" {{if not .View.CanPrev}}disabled{{end}}
                    class="px-3 py-1 border border-gray-300 rounded-md disabled:opacity-50">Previous</button>
            <span>{{.View.PageLabel}}</span>
            <button hx-get="{{.Endpoint}}?action=next" {{if not .View.CanNext}}disabled{{end}}
                    class="px-3 py-1 border border-gray-300 rounded-md disabled:opacity-50">Next</button>
            <button hx-get="{{.Endpoint}}?action=reload" class="px-3 py-1 text-gray-500 hover:text-gray-700" title="Reload">&#8635;</button>
        </div>
    </div>
</div>`,
}
