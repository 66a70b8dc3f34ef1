package taxonomy

import (
	"fmt"
	"sync"
)

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
)

// Default returns the built-in catalog. It panics if the catalog is malformed,
// which the package tests rule out.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := New(DefaultCategories())
		if err != nil {
			panic(fmt.Sprintf("taxonomy: built-in catalog: %v", err))
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

func skill(name string, aliases ...string) SkillEntry {
	return SkillEntry{Name: name, Aliases: aliases}
}

// DefaultCategories returns a fresh copy of the built-in catalog definition.
// Single-letter languages use explicit phrases so that a lone "c" or "r" in
// prose does not register as a skill.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:  "programming_languages",
			Label: "Programming Languages",
			Entries: []SkillEntry{
				skill("Python", "python", "py"),
				skill("JavaScript", "javascript", "js", "ecmascript", "es6", "es2015", "es2020"),
				skill("TypeScript", "typescript", "ts"),
				skill("Java", "java"),
				skill("C++", "c++", "cpp", "cplusplus"),
				skill("C#", "c#", "csharp", "c sharp"),
				skill("C", "c programming", "c language", "ansi c"),
				skill("Go", "go", "golang"),
				skill("Rust", "rust"),
				skill("PHP", "php"),
				skill("Ruby", "ruby"),
				skill("Swift", "swift"),
				skill("Kotlin", "kotlin"),
				skill("Scala", "scala"),
				skill("R", "r programming", "r language", "rstudio"),
				skill("MATLAB", "matlab"),
				skill("Dart", "dart"),
				skill("Perl", "perl"),
				skill("Lua", "lua"),
				skill("Haskell", "haskell"),
				skill("Shell/Bash", "bash", "shell", "zsh", "powershell"),
				skill("SQL", "sql"),
			},
		},
		{
			Name:  "web_frameworks",
			Label: "Web Frameworks",
			Entries: []SkillEntry{
				skill("React", "react", "reactjs", "react.js"),
				skill("Angular", "angular", "angularjs", "angular.js"),
				skill("Vue.js", "vue", "vue.js", "vuejs"),
				skill("Express.js", "express", "express.js", "expressjs"),
				skill("Django", "django"),
				skill("Flask", "flask"),
				skill("FastAPI", "fastapi", "fast api"),
				skill("Spring Boot", "spring boot", "spring", "springframework"),
				skill("Laravel", "laravel"),
				skill("Ruby on Rails", "rails", "ruby on rails", "ror"),
				skill("ASP.NET", "asp.net", "aspnet", "asp net"),
				skill("Next.js", "next.js", "nextjs"),
				skill("Nuxt.js", "nuxt", "nuxt.js", "nuxtjs"),
				skill("Svelte", "svelte", "sveltekit"),
				skill("Node.js", "node.js", "nodejs", "node"),
			},
		},
		{
			Name:  "web_technologies",
			Label: "Web Technologies",
			Entries: []SkillEntry{
				skill("HTML", "html", "html5"),
				skill("CSS", "css", "css3"),
				skill("Sass", "sass", "scss"),
				skill("Bootstrap", "bootstrap"),
				skill("Tailwind CSS", "tailwind", "tailwindcss", "tailwind css"),
				skill("jQuery", "jquery"),
				skill("Webpack", "webpack"),
				skill("Vite", "vite"),
				skill("GraphQL", "graphql"),
				skill("REST API", "rest api", "restful", "rest"),
			},
		},
		{
			Name:  "databases",
			Label: "Databases",
			Entries: []SkillEntry{
				skill("MongoDB", "mongodb", "mongo"),
				skill("PostgreSQL", "postgresql", "postgres", "psql"),
				skill("MySQL", "mysql"),
				skill("SQLite", "sqlite"),
				skill("Redis", "redis"),
				skill("Cassandra", "cassandra"),
				skill("DynamoDB", "dynamodb"),
				skill("Oracle", "oracle", "oracle db"),
				skill("Microsoft SQL Server", "sql server", "mssql", "microsoft sql"),
				skill("Elasticsearch", "elasticsearch", "elastic search"),
				skill("Firebase", "firebase", "firestore"),
			},
		},
		{
			Name:  "cloud_platforms",
			Label: "Cloud Platforms",
			Entries: []SkillEntry{
				skill("AWS", "aws", "amazon web services", "ec2", "s3", "lambda"),
				skill("Google Cloud", "gcp", "google cloud", "google cloud platform"),
				skill("Microsoft Azure", "azure", "microsoft azure"),
				skill("Digital Ocean", "digitalocean", "digital ocean"),
				skill("Heroku", "heroku"),
				skill("Vercel", "vercel"),
				skill("Netlify", "netlify"),
			},
		},
		{
			Name:  "devops_tools",
			Label: "DevOps Tools",
			Entries: []SkillEntry{
				skill("Docker", "docker", "containerization"),
				skill("Kubernetes", "kubernetes", "k8s"),
				skill("Jenkins", "jenkins"),
				skill("Git", "git", "github", "gitlab", "bitbucket"),
				skill("Terraform", "terraform"),
				skill("Ansible", "ansible"),
				skill("CI/CD", "ci/cd", "continuous integration", "continuous deployment"),
				skill("Nginx", "nginx"),
				skill("Apache", "apache", "apache http"),
			},
		},
		{
			Name:  "mobile_development",
			Label: "Mobile Development",
			Entries: []SkillEntry{
				skill("React Native", "react native", "react-native"),
				skill("Flutter", "flutter"),
				skill("Xamarin", "xamarin"),
				skill("Ionic", "ionic"),
				skill("Android Development", "android", "android studio"),
				skill("iOS Development", "ios", "xcode"),
			},
		},
		{
			Name:  "data_science_ml",
			Label: "Data Science & ML",
			Entries: []SkillEntry{
				skill("TensorFlow", "tensorflow", "tf"),
				skill("PyTorch", "pytorch", "torch"),
				skill("Scikit-learn", "scikit-learn", "sklearn", "scikit learn"),
				skill("Pandas", "pandas"),
				skill("NumPy", "numpy"),
				skill("Matplotlib", "matplotlib"),
				skill("Seaborn", "seaborn"),
				skill("Keras", "keras"),
				skill("OpenCV", "opencv", "cv2"),
				skill("Jupyter", "jupyter", "jupyter notebook"),
			},
		},
		{
			Name:  "design_3d_tools",
			Label: "Design & 3D Tools",
			Entries: []SkillEntry{
				skill("Blender", "blender"),
				skill("Photoshop", "photoshop", "adobe photoshop"),
				skill("Illustrator", "illustrator", "adobe illustrator"),
				skill("Figma", "figma"),
				skill("Sketch", "sketch"),
				skill("Maya", "maya", "autodesk maya"),
				skill("3ds Max", "3ds max", "3dsmax"),
				skill("Unity", "unity", "unity3d"),
				skill("Unreal Engine", "unreal", "unreal engine", "ue4", "ue5"),
			},
		},
		{
			Name:  "testing_frameworks",
			Label: "Testing Frameworks",
			Entries: []SkillEntry{
				skill("Jest", "jest"),
				skill("Mocha", "mocha"),
				skill("Cypress", "cypress"),
				skill("Selenium", "selenium"),
				skill("Pytest", "pytest"),
				skill("JUnit", "junit"),
				skill("Postman", "postman"),
			},
		},
		{
			Name:  "soft_skills",
			Label: "Soft Skills",
			Entries: []SkillEntry{
				skill("Project Management", "project management", "pm"),
				skill("Agile", "agile", "scrum", "kanban"),
				skill("Leadership", "leadership", "team lead", "management"),
				skill("Communication", "communication", "presentation"),
				skill("Problem Solving", "problem solving", "analytical"),
			},
		},
	}
}
