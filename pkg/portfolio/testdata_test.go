package portfolio

const sampleJSON = `{
  "personal": {
    "name": "Test User",
    "title": "Design Engineer",
    "location": "Test City",
    "summary": "Builds things.",
    "highlights": ["One", "Two"],
    "status": "Available"
  },
  "skills": {
    "programming": ["Go", "Python"],
    "eda_tools": []
  },
  "experience": [
    {"position": "Engineer", "company": "Acme", "duration": "2020-2023", "location": "Remote", "achievements": ["Shipped"]}
  ],
  "contact": {"email": "test@example.com"}
}`

const sampleYAML = `
personal:
  name: Test User
  title: Design Engineer
languages:
  - language: English
    level: Fluent
  - language: Hindi
    level: Native
`
